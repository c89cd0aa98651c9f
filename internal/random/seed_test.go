package random

import (
	"errors"
	"fmt"
	"testing"

	platformerrors "github.com/emberhatch/menagerie/internal/platform/errors"
)

func allowReplayOnly(mode RollMode) bool {
	return mode == RollModeReplay
}

func TestResolveSeedDefaultsToServerSeed(t *testing.T) {
	seed, source, mode, err := ResolveSeed(nil, func() (int64, error) {
		return 123, nil
	}, nil)
	if err != nil {
		t.Fatalf("ResolveSeed returned error: %v", err)
	}
	if seed != 123 {
		t.Fatalf("seed = %d, want 123", seed)
	}
	if source != SeedSourceServer {
		t.Fatalf("seed source = %q, want %q", source, SeedSourceServer)
	}
	if mode != RollModeLive {
		t.Fatalf("roll mode = %v, want %v", mode, RollModeLive)
	}
}

func TestResolveSeedUsesClientSeedWhenAllowed(t *testing.T) {
	clientSeed := int64(77)
	seed, source, mode, err := ResolveSeed(&Request{
		Mode: RollModeReplay,
		Seed: &clientSeed,
	}, func() (int64, error) {
		return 123, nil
	}, allowReplayOnly)
	if err != nil {
		t.Fatalf("ResolveSeed returned error: %v", err)
	}
	if seed != clientSeed {
		t.Fatalf("seed = %d, want %d", seed, clientSeed)
	}
	if source != SeedSourceClient {
		t.Fatalf("seed source = %q, want %q", source, SeedSourceClient)
	}
	if mode != RollModeReplay {
		t.Fatalf("roll mode = %v, want %v", mode, RollModeReplay)
	}
}

func TestResolveSeedIgnoresClientSeedWhenDisallowed(t *testing.T) {
	clientSeed := int64(77)
	seed, source, mode, err := ResolveSeed(&Request{
		Mode: RollModeLive,
		Seed: &clientSeed,
	}, func() (int64, error) {
		return 555, nil
	}, allowReplayOnly)
	if err != nil {
		t.Fatalf("ResolveSeed returned error: %v", err)
	}
	if seed != 555 {
		t.Fatalf("seed = %d, want 555", seed)
	}
	if source != SeedSourceServer {
		t.Fatalf("seed source = %q, want %q", source, SeedSourceServer)
	}
	if mode != RollModeLive {
		t.Fatalf("roll mode = %v, want %v", mode, RollModeLive)
	}
}

func TestResolveSeedWithRejectClientSeedsPolicy(t *testing.T) {
	clientSeed := int64(77)
	seed, source, mode, err := ResolveSeed(&Request{
		Mode: RollModeReplay,
		Seed: &clientSeed,
	}, func() (int64, error) {
		return 999, nil
	}, RejectClientSeeds)
	if err != nil {
		t.Fatalf("ResolveSeed returned error: %v", err)
	}
	if seed != 999 {
		t.Fatalf("seed = %d, want 999", seed)
	}
	if source != SeedSourceServer {
		t.Fatalf("seed source = %q, want %q", source, SeedSourceServer)
	}
	if mode != RollModeReplay {
		t.Fatalf("roll mode = %v, want %v", mode, RollModeReplay)
	}
}

func TestResolveSeedRejectsNegativeClientSeed(t *testing.T) {
	clientSeed := int64(-1)
	_, _, _, err := ResolveSeed(&Request{
		Mode: RollModeReplay,
		Seed: &clientSeed,
	}, func() (int64, error) {
		return 123, nil
	}, allowReplayOnly)
	if !errors.Is(err, ErrSeedOutOfRange()) {
		t.Fatalf("ResolveSeed error = %v, want %v", err, ErrSeedOutOfRange())
	}
}

func TestResolveSeedPropagatesServerSeedError(t *testing.T) {
	wantErr := fmt.Errorf("entropy exhausted")
	_, _, _, err := ResolveSeed(nil, func() (int64, error) {
		return 0, wantErr
	}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("ResolveSeed error = %v, want wrapped %v", err, wantErr)
	}
}

func TestResolveSeedRequiresServerSeedFunc(t *testing.T) {
	_, _, _, err := ResolveSeed(nil, nil, nil)
	if err == nil {
		t.Fatal("ResolveSeed succeeded without a server seed function")
	}
}

func TestNewSeedIsNonNegative(t *testing.T) {
	for i := 0; i < 100; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("NewSeed returned error: %v", err)
		}
		if seed < 0 {
			t.Fatalf("NewSeed = %d, want non-negative", seed)
		}
	}
}

func TestParseRollMode(t *testing.T) {
	tcs := []struct {
		value   string
		want    RollMode
		wantErr bool
	}{
		{value: "live", want: RollModeLive},
		{value: "replay", want: RollModeReplay},
		{value: "REPLAY", want: RollModeReplay},
		{value: " live ", want: RollModeLive},
		{value: "", want: RollModeUnspecified},
		{value: "rewind", wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.value, func(t *testing.T) {
			got, err := ParseRollMode(tc.value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseRollMode(%q) succeeded, want error", tc.value)
				}
				if !platformerrors.IsCode(err, platformerrors.CodeRollModeInvalid) {
					t.Fatalf("ParseRollMode(%q) error code = %v, want %v", tc.value, platformerrors.GetCode(err), platformerrors.CodeRollModeInvalid)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRollMode(%q) returned error: %v", tc.value, err)
			}
			if got != tc.want {
				t.Fatalf("ParseRollMode(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestRollModeString(t *testing.T) {
	tcs := []struct {
		mode RollMode
		want string
	}{
		{mode: RollModeLive, want: "live"},
		{mode: RollModeReplay, want: "replay"},
		{mode: RollModeUnspecified, want: "unspecified"},
	}

	for _, tc := range tcs {
		if got := tc.mode.String(); got != tc.want {
			t.Errorf("RollMode(%d).String() = %q, want %q", tc.mode, got, tc.want)
		}
	}
}
