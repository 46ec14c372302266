package classifier

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultLabels is the furniture catalogue the stock artifact was trained on,
// in model output order.
var DefaultLabels = NormalizeLabels([]string{
	"ALSEDA Stool", "BESTÅ storage system", "BRANÄS Basket", "DRAGAN- Soap dispenser", "FRIHETEN 1-seat sofa",
	"HABITAT gala glass table", "HENRIKSDAL Chair", "INGEFÄRA Plant pot with saucer", "KAFFEBÖNA Plant pot ",
	"KALLAX Shelving unit", "LACK Coffee table ", "LANDSKRONA 1-seat sofa", "LAUTERS Floor lamp", "LIVSVERK Vase",
	"MARJUN curtains", "MARTIN Chair", "MOSJÖ TV bench", "MUSKAN Shelving unit", "NOCKEBY 2-seat sofa",
	"RÅDIG Espresso maker", "RIBBA Frame", "RINGBLOMMA Roman blind", "RINNIG Soap dispenser", "SALMI Glass Table",
	"SAMVERKA Decoration", "SANDARED Pouffe ", "STABBIG Decoration", "STOENSE Rug", "VIMLE 2-seat sofa",
})

// NormalizeLabels trims whitespace and converts each label to Unicode NFC so
// names typed with combining marks match their precomposed form.
func NormalizeLabels(in []string) []string {
	out := make([]string, len(in))
	for i, l := range in {
		out[i] = norm.NFC.String(strings.TrimSpace(l))
	}
	return out
}
