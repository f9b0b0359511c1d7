package repository

import "time"

// idSequence hands out strictly increasing ids for one collection. Ids stay
// close to the creation time in milliseconds, like the ids already persisted,
// but two records created in the same millisecond never collide.
type idSequence struct {
	last int64
}

func (s *idSequence) observe(id int64) {
	if id > s.last {
		s.last = id
	}
}

func (s *idSequence) next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
