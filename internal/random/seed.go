package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/emberhatch/menagerie/internal/platform/errors"
)

// RollMode distinguishes live rolls, which draw a fresh server seed, from
// replays, which re-run a recorded roll from a caller-provided seed.
type RollMode int

const (
	RollModeUnspecified RollMode = iota
	RollModeLive
	RollModeReplay
)

func (m RollMode) String() string {
	switch m {
	case RollModeLive:
		return "live"
	case RollModeReplay:
		return "replay"
	default:
		return "unspecified"
	}
}

// ParseRollMode maps a wire value to a RollMode. The empty string is
// RollModeUnspecified so callers can treat absence as a live roll.
func ParseRollMode(value string) (RollMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return RollModeUnspecified, nil
	case "live":
		return RollModeLive, nil
	case "replay":
		return RollModeReplay, nil
	default:
		return RollModeUnspecified, errors.WithMetadata(errors.CodeRollModeInvalid, "unknown roll mode", map[string]string{
			"Mode": value,
		})
	}
}

// SeedSource records which side supplied the seed for an outcome.
type SeedSource string

const (
	SeedSourceServer SeedSource = "server"
	SeedSourceClient SeedSource = "client"
)

// Request carries the caller's randomness preferences for one resolution.
// A nil Request means a live roll on a fresh server seed.
type Request struct {
	Mode RollMode
	Seed *int64
}

// Roll describes the randomness one resolution ran on. Outcomes record it
// so any roll can be replayed and verified later.
type Roll struct {
	Seed   int64
	Source SeedSource
	Mode   RollMode
	Algo   string
}

// SeedPolicy decides whether a caller-provided seed is honored for a roll
// mode. Refused seeds fall through to a fresh server seed.
type SeedPolicy func(RollMode) bool

// AllowReplaySeeds is the standard client-seed policy: callers may pin a
// seed only when replaying, never on live rolls.
func AllowReplaySeeds(mode RollMode) bool {
	return mode == RollModeReplay
}

// RejectClientSeeds refuses caller-provided seeds in every mode. Deployments
// that audit replays offline run with this policy so no caller can pin an
// outcome.
func RejectClientSeeds(RollMode) bool {
	return false
}

// NewSeed returns a non-negative seed from the operating system's entropy
// pool. Server seeds stay non-negative so they round-trip through wire
// formats that reject negative values.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read seed entropy: %w", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:]) &^ (1 << 63)), nil
}

// ErrSeedOutOfRange returns the error for a client seed below zero.
func ErrSeedOutOfRange() error {
	return errors.New(errors.CodeSeedOutOfRange, "client seed must be non-negative")
}

// ResolveSeed decides which seed a resolution runs on.
//
// A client seed is honored only when the request names one and allowClientSeed
// approves the request's mode; otherwise serverSeed supplies a fresh value and
// the caller's seed is ignored. Client seeds must be non-negative.
func ResolveSeed(req *Request, serverSeed func() (int64, error), allowClientSeed SeedPolicy) (int64, SeedSource, RollMode, error) {
	mode := RollModeLive
	if req != nil && req.Mode != RollModeUnspecified {
		mode = req.Mode
	}

	if req != nil && req.Seed != nil && allowClientSeed != nil && allowClientSeed(mode) {
		if *req.Seed < 0 {
			return 0, "", mode, ErrSeedOutOfRange()
		}
		return *req.Seed, SeedSourceClient, mode, nil
	}

	if serverSeed == nil {
		return 0, "", mode, errors.New(errors.CodeUnknown, "server seed function is required")
	}
	seed, err := serverSeed()
	if err != nil {
		return 0, "", mode, fmt.Errorf("generate server seed: %w", err)
	}
	return seed, SeedSourceServer, mode, nil
}
