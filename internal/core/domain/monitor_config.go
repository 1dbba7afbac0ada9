package domain

import (
	"errors"
	"fmt"
	"time"
)

// Policy defaults of the threshold detector. 240 blocks is roughly one hour at ~15 s per block.
const (
	DefaultThresholdWindow   uint64 = 240
	DefaultThresholdInterval        = 30 * time.Second
)

// ErrInvalidMonitorConfig indicates a MonitorConfig missing a field its detector needs.
var ErrInvalidMonitorConfig = errors.New("invalid monitor config")

// MonitorConfig is the immutable per-run configuration of one detector.
type MonitorConfig struct {
	WatchedAddress  Address
	MethodSignature string
	Limit           uint64
	Recipient       string

	Window   uint64
	Interval time.Duration
}

// HasRecipient reports whether alerts should be delivered.
func (c MonitorConfig) HasRecipient() bool {
	return c.Recipient != ""
}

// ValidateForThreshold checks the fields the threshold detector relies on.
func (c MonitorConfig) ValidateForThreshold() error {
	if c.WatchedAddress.IsZero() {
		return fmt.Errorf("%w: watched address is required", ErrInvalidMonitorConfig)
	}
	if c.MethodSignature == "" {
		return fmt.Errorf("%w: method signature is required", ErrInvalidMonitorConfig)
	}
	if !c.HasRecipient() {
		return fmt.Errorf("%w: recipient is required", ErrInvalidMonitorConfig)
	}
	if c.Window == 0 {
		return fmt.Errorf("%w: window must be greater than 0", ErrInvalidMonitorConfig)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be greater than 0", ErrInvalidMonitorConfig)
	}
	return nil
}
