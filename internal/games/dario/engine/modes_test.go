package engine

import (
	"errors"
	"testing"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Mode
		event   Event
		want    Mode
		wantErr bool
	}{
		{name: "play from ready", from: ModeReady, event: EventPlay, want: ModePlaying},
		{name: "pause", from: ModePlaying, event: EventPause, want: ModePaused},
		{name: "resume", from: ModePaused, event: EventResume, want: ModePlaying},
		{name: "win", from: ModePlaying, event: EventWin, want: ModeWon},
		{name: "lose", from: ModePlaying, event: EventLose, want: ModeLost},
		{name: "reset from won", from: ModeWon, event: EventReset, want: ModeReady},
		{name: "end from paused", from: ModePaused, event: EventEnd, want: ModeEnded},
		{name: "play twice", from: ModePlaying, event: EventPlay, wantErr: true},
		{name: "pause while ready", from: ModeReady, event: EventPause, wantErr: true},
		{name: "win while paused", from: ModePaused, event: EventWin, wantErr: true},
		{name: "resume after loss", from: ModeLost, event: EventResume, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects, err := Transition(tt.from, tt.event)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("err = %v, want ErrInvalidTransition", err)
				}
				if got != tt.from {
					t.Errorf("mode changed to %s on rejected transition", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Transition(%s, %s) = %s, want %s", tt.from, tt.event, got, tt.want)
			}
			if len(effects) == 0 || effects[0] != EffectNotifyMode {
				t.Errorf("effects = %v, want notify first", effects)
			}
		})
	}
}

func TestTransitionEffects(t *testing.T) {
	_, effects, _ := Transition(ModeWon, EventReset)
	if !hasEffect(effects, EffectResetGame) {
		t.Errorf("reset effects = %v, want reset-game", effects)
	}

	_, effects, _ = Transition(ModePaused, EventResume)
	if !hasEffect(effects, EffectResume) {
		t.Errorf("resume effects = %v, want resume", effects)
	}

	_, effects, _ = Transition(ModePlaying, EventPause)
	if !hasEffect(effects, EffectRender) {
		t.Errorf("pause effects = %v, want render", effects)
	}
}

func hasEffect(effects []Effect, want Effect) bool {
	for _, e := range effects {
		if e == want {
			return true
		}
	}
	return false
}

func TestParseEvent(t *testing.T) {
	for ev := EventPlay; ev <= EventEnd; ev++ {
		got, err := ParseEvent(ev.String())
		if err != nil || got != ev {
			t.Errorf("ParseEvent(%q) = %v, %v", ev.String(), got, err)
		}
	}
	if _, err := ParseEvent("jump"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ParseEvent(jump) error = %v, want ErrInvalidTransition", err)
	}
}
