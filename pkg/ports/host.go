package ports

import (
	"context"

	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

const statusListen = "LISTEN"

type hostListeners struct{}

func (hostListeners) Listeners(ctx context.Context) ([]Listener, error) {
	conns, err := net.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, err
	}
	out := make([]Listener, 0, len(conns))
	for _, c := range conns {
		if c.Status != statusListen {
			continue
		}
		out = append(out, Listener{Port: int(c.Laddr.Port), PID: c.Pid})
	}
	return out, nil
}

type hostNames struct{}

func (hostNames) ProcessName(ctx context.Context, pid int32) (string, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return "", err
	}
	return p.NameWithContext(ctx)
}
