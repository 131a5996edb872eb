package document

import "sync"

// documentLocks выдаёт мьютекс на документ. Запись удаляется из карты,
// когда её больше никто не держит и не ждёт.
type documentLocks struct {
	mu    sync.Mutex
	locks map[string]*documentLock
}

type documentLock struct {
	sync.Mutex
	holders int
}

func newDocumentLocks() *documentLocks {
	return &documentLocks{locks: make(map[string]*documentLock)}
}

// lock блокирует документ id и возвращает функцию разблокировки.
func (l *documentLocks) lock(id string) func() {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &documentLock{}
		l.locks[id] = lock
	}
	lock.holders++
	l.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()

		l.mu.Lock()
		lock.holders--
		if lock.holders == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *documentLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
