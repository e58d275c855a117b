package syncing

import "sync/atomic"

// RunLock permite apenas uma sincronização por vez. Pertence a quem dispara as execuções
// (agendador, API ou CLI) e não tem estado global.
type RunLock struct {
	busy atomic.Bool
}

// TryAcquire retorna false quando já existe uma execução em andamento
func (l *RunLock) TryAcquire() bool {
	return l.busy.CompareAndSwap(false, true)
}

func (l *RunLock) Release() {
	l.busy.Store(false)
}

func (l *RunLock) Busy() bool {
	return l.busy.Load()
}
