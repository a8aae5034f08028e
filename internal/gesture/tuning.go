package gesture

// Tuning holds the kinematic curve constants. The values are empirical;
// they live in the config file so they can be adjusted without rebuilding.
type Tuning struct {
	// InertiaFactor is the share of the previous frame's pre-rounding delta
	// carried into the current frame.
	InertiaFactor float64 `json:"inertia_factor"`

	// PrecisionSpeedThreshold is the speed below which fine-positioning mode
	// engages; PrecisionFactor scales deltas inside it.
	PrecisionSpeedThreshold float64 `json:"precision_speed_threshold"`
	PrecisionFactor         float64 `json:"precision_factor"`

	// AccelSpeedThreshold is the speed above which super-linear acceleration
	// engages. Speeds between the two thresholds pass through unscaled.
	AccelSpeedThreshold float64 `json:"accel_speed_threshold"`
	AccelPower          float64 `json:"accel_power"`
	AccelMultiplier     float64 `json:"accel_multiplier"`

	// EdgeZonePx and EdgeDampingFactor reduce sensitivity near the remote
	// viewport's boundary to limit overshoot.
	EdgeZonePx        float64 `json:"edge_zone_px"`
	EdgeDampingFactor float64 `json:"edge_damping_factor"`

	// Scroll conversion and throttling.
	ScrollBaseFactor  float64 `json:"scroll_base_factor"`
	ScrollAccelFactor float64 `json:"scroll_accel_factor"`
	ScrollIntervalMs  int64   `json:"scroll_interval_ms"`

	// OutlierLimit discards rounded deltas at or beyond this magnitude as
	// touchpad glitches.
	OutlierLimit int `json:"outlier_limit"`
}

// DefaultTuning returns the stock curve. The precision threshold sits below
// the acceleration threshold so mid-speed movement passes through at base
// sensitivity.
func DefaultTuning() Tuning {
	return Tuning{
		InertiaFactor:           0.08,
		PrecisionSpeedThreshold: 0.15,
		PrecisionFactor:         4.0,
		AccelSpeedThreshold:     0.7,
		AccelPower:              1.4,
		AccelMultiplier:         1.05,
		EdgeZonePx:              40,
		EdgeDampingFactor:       0.7,
		ScrollBaseFactor:        2.5,
		ScrollAccelFactor:       0.15,
		ScrollIntervalMs:        25,
		OutlierLimit:            1000,
	}
}
