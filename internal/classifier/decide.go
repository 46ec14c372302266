package classifier

import "fmt"

const (
	// DefaultThresholdPercent is the acceptance cut-off; confidences at or below it are rejected.
	DefaultThresholdPercent = 69

	// RejectedResult and RejectedMessage make up the low-confidence response.
	RejectedResult  = "Unrecognized"
	RejectedMessage = "I can't identify the object"
)

// Decision is the outcome of applying the acceptance policy to a prediction.
type Decision struct {
	Accepted bool
	Label    string
	Index    int
	// Confidence of the predicted class in percent.
	Confidence float64
}

// Decide applies the acceptance threshold: confidence <= thresholdPercent rejects.
func Decide(p Prediction, thresholdPercent float64) (Decision, error) {
	if p.Index < 0 || p.Index >= len(p.Scores) {
		return Decision{}, fmt.Errorf("prediction index %d out of range for %d scores", p.Index, len(p.Scores))
	}
	conf := float64(p.Scores[p.Index]) * 100
	return Decision{
		Accepted:   conf > thresholdPercent,
		Label:      p.Label,
		Index:      p.Index,
		Confidence: conf,
	}, nil
}

// Result formats an accepted decision as "<label> (prob=NN%)".
// Rejected decisions yield RejectedResult.
func (d Decision) Result() string {
	if !d.Accepted {
		return RejectedResult
	}
	return fmt.Sprintf("%s (prob=%2.0f%%)", d.Label, d.Confidence)
}
