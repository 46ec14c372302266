package manager

import (
	"context"
	"time"

	"classifyd/internal/common/hostinfo"
	"classifyd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status(ctx context.Context) types.StatusResponse {
	inflight := len(m.genCh)
	queued := len(m.queueCh) - inflight
	if queued < 0 {
		queued = 0
	}
	state := StateReady
	if m.draining.Load() {
		state = StateDraining
	}
	model := m.cfg.Model
	model.Labels = len(m.pred.Labels())
	resp := types.StatusResponse{
		State:            string(state),
		Model:            model,
		ThresholdPercent: m.cfg.ThresholdPercent,
		Inference: types.InferenceStatus{
			Workers:       cap(m.genCh),
			Inflight:      inflight,
			Queued:        queued,
			MaxQueueDepth: m.cfg.MaxQueueDepth,
			AcceptedTotal: m.acceptedTotal.Load(),
			RejectedTotal: m.rejectedTotal.Load(),
			FailedTotal:   m.failedTotal.Load(),
		},
		UptimeSeconds:  int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	host := &types.HostStatus{GPU: m.cfg.HasGPU}
	if mem, err := hostinfo.ReadMemory(ctx); err == nil {
		host.MemTotalMB = mem.TotalMB
		host.MemUsedPercent = mem.UsedPercent
	} else {
		m.log.Debug().Err(err).Msg("read memory")
	}
	if n, err := hostinfo.CPUCount(ctx); err == nil {
		host.CPUs = n
	}
	resp.Host = host
	return resp
}
