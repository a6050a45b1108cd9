package client

import (
	"math/rand"
	"time"

	"edugpt/backend/tutor"
)

// LocalTutor answers chat messages locally with the scripted templates,
// after an artificial delay simulating a remote model's latency. The delay
// is the only randomness in the system.
type LocalTutor struct {
	Profile  tutor.Profile
	MinDelay time.Duration
	MaxDelay time.Duration
}

func NewLocalTutor(profile tutor.Profile) *LocalTutor {
	return &LocalTutor{
		Profile:  profile,
		MinDelay: time.Second,
		MaxDelay: 2 * time.Second,
	}
}

// Welcome is the greeting shown when the chat opens.
func (t *LocalTutor) Welcome() string {
	return tutor.Welcome(t.Profile)
}

// Reply waits a uniformly distributed bounded delay, then returns the
// scripted response.
func (t *LocalTutor) Reply(message string) string {
	if t.MaxDelay > t.MinDelay {
		delay := t.MinDelay + time.Duration(rand.Int63n(int64(t.MaxDelay-t.MinDelay)))
		time.Sleep(delay)
	} else if t.MinDelay > 0 {
		time.Sleep(t.MinDelay)
	}
	return tutor.Reply(message, t.Profile)
}
