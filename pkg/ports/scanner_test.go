package ports_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/windowsadmins/wampdoctor/pkg/ports"
)

type staticListeners struct {
	listeners []ports.Listener
	err       error
}

func (s staticListeners) Listeners(context.Context) ([]ports.Listener, error) {
	return s.listeners, s.err
}

type nameTable struct {
	names map[int32]string
	errs  map[int32]error
	calls atomic.Int32
}

func (n *nameTable) ProcessName(_ context.Context, pid int32) (string, error) {
	n.calls.Add(1)
	if err, ok := n.errs[pid]; ok {
		return "", err
	}
	return n.names[pid], nil
}

func TestScan_OneEntryPerPortInOrder(t *testing.T) {
	t.Parallel()

	names := &nameTable{names: map[int32]string{4421: "mysqld.exe"}}
	s := ports.NewScanner(
		ports.WithListenerSource(staticListeners{listeners: []ports.Listener{
			{Port: 3306, PID: 4421},
			{Port: 135, PID: 900},
		}}),
		ports.WithNameResolver(names),
	)

	results := s.Scan(context.Background(), []int{80, 443, 3306})
	require.Len(t, results, 3)
	require.Equal(t, []int{80, 443, 3306}, []int{results[0].Port, results[1].Port, results[2].Port})
	require.True(t, results[0].Free())
	require.True(t, results[1].Free())
	require.Equal(t, &ports.Owner{Name: "mysqld.exe", PID: 4421}, results[2].Owner)
	require.EqualValues(t, 1, names.calls.Load(), "only requested ports are resolved")
}

func TestScan_PerPortFailures(t *testing.T) {
	t.Parallel()

	var testCases = []struct {
		scenario  string
		listeners []ports.Listener
		names     *nameTable
		wantErr   error
	}{
		{
			scenario:  "pid zero",
			listeners: []ports.Listener{{Port: 80, PID: 0}},
			names:     &nameTable{},
			wantErr:   ports.ErrNoOwner,
		},
		{
			scenario:  "empty process name",
			listeners: []ports.Listener{{Port: 80, PID: 12}},
			names:     &nameTable{names: map[int32]string{12: "  "}},
			wantErr:   ports.ErrNoOwner,
		},
		{
			scenario:  "process exited during lookup",
			listeners: []ports.Listener{{Port: 80, PID: 12}},
			names:     &nameTable{errs: map[int32]error{12: errors.New("process not found")}},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			listeners := append([]ports.Listener{{Port: 443, PID: 77}}, tc.listeners...)
			tc.names.names = mergeName(tc.names.names, 77, "httpd.exe")

			s := ports.NewScanner(
				ports.WithListenerSource(staticListeners{listeners: listeners}),
				ports.WithNameResolver(tc.names),
			)
			results := ports.AsMap(s.Scan(context.Background(), []int{80, 443}))

			require.Error(t, results[80].Err)
			require.Nil(t, results[80].Owner)
			if tc.wantErr != nil {
				require.ErrorIs(t, results[80].Err, tc.wantErr)
			}
			require.NoError(t, results[443].Err)
			require.Equal(t, "httpd.exe", results[443].Owner.Name)
		})
	}
}

func TestScan_TableUnavailable(t *testing.T) {
	t.Parallel()

	s := ports.NewScanner(
		ports.WithListenerSource(staticListeners{err: errors.New("access denied")}),
		ports.WithNameResolver(&nameTable{}),
	)
	results := s.Scan(context.Background(), []int{80, 443, 3306})
	require.Len(t, results, 3)
	for _, r := range results {
		require.Error(t, r.Err)
		require.False(t, r.Free())
	}
}

func TestScan_PrefersSocketWithPID(t *testing.T) {
	t.Parallel()

	s := ports.NewScanner(
		ports.WithListenerSource(staticListeners{listeners: []ports.Listener{
			{Port: 80, PID: 0},
			{Port: 80, PID: 2048},
		}}),
		ports.WithNameResolver(&nameTable{names: map[int32]string{2048: "httpd.exe"}}),
		ports.WithConcurrency(1),
	)
	results := s.Scan(context.Background(), []int{80})
	require.NoError(t, results[0].Err)
	require.Equal(t, int32(2048), results[0].Owner.PID)
}

func mergeName(m map[int32]string, pid int32, name string) map[int32]string {
	if m == nil {
		m = map[int32]string{}
	}
	m[pid] = name
	return m
}
