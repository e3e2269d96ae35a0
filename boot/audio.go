package boot

import (
	"context"
	"log/slog"
)

const AudioSuspended = "suspended"

// AudioContext is the runtime's shared audio output. Browsers keep it
// suspended until a user gesture.
type AudioContext interface {
	State() string
	Resume(ctx context.Context) error
}

// ResumeAudio resumes the started runtime's audio context if it is
// suspended. It does nothing if inst has not started, has no audio
// context, or the context is not suspended. Call it from a user
// interaction handler.
func ResumeAudio(ctx context.Context, inst *Instance, log *slog.Logger) error {
	rt, ok := inst.Runtime()
	if !ok {
		return nil
	}
	ac := rt.Audio()
	if ac == nil || ac.State() != AudioSuspended {
		return nil
	}
	if err := ac.Resume(ctx); err != nil {
		return err
	}
	if log == nil {
		log = slog.Default()
	}
	log.Info("Audio context resumed")
	return nil
}
