// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with stock simulation tuning.
// - Tunables mirror the simulation formulas; changing a value here changes
//   match outcomes, not code paths.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains every tunable of the simulation engine. All numeric
// knobs operate on the 0-100 attribute scale unless noted otherwise.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DefaultMode selects the simulation mode when a request leaves it
	// unset: "advanced" or "simple".
	DefaultMode string `koanf:"default_mode"`

	// MatchQueueSize bounds the in-memory bulk simulation queue.
	MatchQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of bulk simulation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the simulated-match dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MetricsAddr is the listen address for the Prometheus endpoint.
	// Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// --- Performance ---

	// HometownBonus multiplies base performance for hometown competitors.
	HometownBonus float64 `koanf:"hometown_bonus"`

	// FormVariance is the half-width of the nightly form multiplier,
	// i.e. 0.05 yields a factor in [0.95, 1.05].
	FormVariance float64 `koanf:"form_variance"`

	// HighMoraleThreshold and LowMoraleThreshold bound the morale bands
	// that scale in-ring skills before performance is computed.
	HighMoraleThreshold float64 `koanf:"high_morale_threshold"`
	LowMoraleThreshold  float64 `koanf:"low_morale_threshold"`
	HighMoraleBoost     float64 `koanf:"high_morale_boost"`
	LowMoralePenalty    float64 `koanf:"low_morale_penalty"`

	// --- Chemistry and storylines ---

	// FeudHeatDivisor converts feud heat into a performance bonus
	// (heat / divisor).
	FeudHeatDivisor float64 `koanf:"feud_heat_divisor"`

	// ChemistryBonus is the per-pair adjustment for friends and rivals in
	// advanced mode; SimpleChemistryBonus is the simple-mode counterpart.
	ChemistryBonus       float64 `koanf:"chemistry_bonus"`
	SimpleChemistryBonus float64 `koanf:"simple_chemistry_bonus"`

	// --- Rating weights ---

	// PerformanceWeight scales the averaged performance score in the
	// final rating. Psychology and popularity weights differ per mode.
	PerformanceWeight      float64 `koanf:"performance_weight"`
	PsychologyWeight       float64 `koanf:"psychology_weight"`
	PopularityWeight       float64 `koanf:"popularity_weight"`
	SimplePsychologyWeight float64 `koanf:"simple_psychology_weight"`
	SimplePopularityWeight float64 `koanf:"simple_popularity_weight"`

	// RatingRandomness is the half-width of the rating noise band.
	RatingRandomness       float64 `koanf:"rating_randomness"`
	SimpleRatingRandomness float64 `koanf:"simple_rating_randomness"`

	// Per-competitor score noise half-widths used when picking a winner.
	WinnerRandomness       float64 `koanf:"winner_randomness"`
	SimpleWinnerRandomness float64 `koanf:"simple_winner_randomness"`

	// SimpleScoreNoise is the half-width of the flat per-competitor noise
	// added to simple-mode scores.
	SimpleScoreNoise float64 `koanf:"simple_score_noise"`

	// --- Phase pacing ---

	// MinMomentumShifts and MaxMomentumShifts bound the number of
	// mid-match momentum swings (inclusive).
	MinMomentumShifts int `koanf:"min_momentum_shifts"`
	MaxMomentumShifts int `koanf:"max_momentum_shifts"`

	// MomentumGainMin and MomentumGainMax bound each swing's gain.
	MomentumGainMin float64 `koanf:"momentum_gain_min"`
	MomentumGainMax float64 `koanf:"momentum_gain_max"`

	// MomentumScoreFactor converts mid-match momentum gain into score;
	// MomentumClimaxFactor converts accumulated momentum at the climax.
	MomentumScoreFactor  float64 `koanf:"momentum_score_factor"`
	MomentumClimaxFactor float64 `koanf:"momentum_climax_factor"`

	// NearFallChance is the probability of a near fall per mid-match
	// sequence; NearFallBonus is the score it awards.
	NearFallChance float64 `koanf:"near_fall_chance"`
	NearFallBonus  float64 `koanf:"near_fall_bonus"`

	// PostMatchAngleChance is the probability of a post-match angle.
	PostMatchAngleChance float64 `koanf:"post_match_angle_chance"`

	// --- Traits ---

	CrowdFavouriteBonus     float64 `koanf:"crowd_favourite_bonus"`
	HardcoreSpecialistBonus float64 `koanf:"hardcore_specialist_bonus"`
	SubmissionExpertMax     float64 `koanf:"submission_expert_max"`
	BigMatchPerformerBonus  float64 `koanf:"big_match_performer_bonus"`
	LazyWorkerPenalty       float64 `koanf:"lazy_worker_penalty"`
	LazyWorkerChance        float64 `koanf:"lazy_worker_chance"`
	ChemistryMasterBonus    float64 `koanf:"chemistry_master_bonus"`

	// --- Injuries ---

	// InjuriesEnabled gates the competitor injury roll entirely.
	InjuriesEnabled bool `koanf:"injuries_enabled"`

	// BaseInjuryChance is the floor probability (percent) in advanced
	// mode; SimpleInjuryMultiplier scales base and match risk in simple
	// mode.
	BaseInjuryChance       float64 `koanf:"base_injury_chance"`
	SimpleInjuryMultiplier float64 `koanf:"simple_injury_multiplier"`

	// InjuryFatigueThreshold is the fatigue level above which the
	// surcharge applies; InjuryFatigueRate is percent per excess point.
	InjuryFatigueThreshold float64 `koanf:"injury_fatigue_threshold"`
	InjuryFatigueRate      float64 `koanf:"injury_fatigue_rate"`

	// LowStaminaThreshold and LowStaminaMultiplier penalize gassed
	// competitors.
	LowStaminaThreshold  float64 `koanf:"low_stamina_threshold"`
	LowStaminaMultiplier float64 `koanf:"low_stamina_multiplier"`

	// MaxInjuryChance clamps the final probability (percent).
	MaxInjuryChance float64 `koanf:"max_injury_chance"`

	// Severity thresholds on the computed chance value.
	MinorInjuryThreshold    float64 `koanf:"minor_injury_threshold"`
	ModerateInjuryThreshold float64 `koanf:"moderate_injury_threshold"`

	// Recovery week ranges per severity (inclusive).
	MinorRecoveryMin    int `koanf:"minor_recovery_min"`
	MinorRecoveryMax    int `koanf:"minor_recovery_max"`
	ModerateRecoveryMin int `koanf:"moderate_recovery_min"`
	ModerateRecoveryMax int `koanf:"moderate_recovery_max"`
	MajorRecoveryMin    int `koanf:"major_recovery_min"`
	MajorRecoveryMax    int `koanf:"major_recovery_max"`

	// Stat multipliers applied while injured, per severity.
	MinorStatPenalty    float64 `koanf:"minor_stat_penalty"`
	ModerateStatPenalty float64 `koanf:"moderate_stat_penalty"`
	MajorStatPenalty    float64 `koanf:"major_stat_penalty"`

	// --- Referees ---

	// RefereeIncidentsEnabled gates the in-match incident system.
	RefereeIncidentsEnabled bool `koanf:"referee_incidents_enabled"`

	// RefereeIncidentBaseChance is the per-check probability (percent);
	// RefereeIncidentCap clamps the adjusted probability.
	RefereeIncidentBaseChance float64 `koanf:"referee_incident_base_chance"`
	RefereeIncidentCap        float64 `koanf:"referee_incident_cap"`

	// ClimaxIncidentMultiplier and HighRiskIncidentMultiplier scale the
	// incident probability in the closing phase and in high-risk bouts.
	ClimaxIncidentMultiplier   float64 `koanf:"climax_incident_multiplier"`
	HighRiskIncidentMultiplier float64 `koanf:"high_risk_incident_multiplier"`

	// MaxRefereeMatchesPerWeek caps weekly assignments per official.
	MaxRefereeMatchesPerWeek int `koanf:"max_referee_matches_per_week"`

	// RefereeFatiguePerMatch accrues after each bout worked;
	// RefereeFatigueRecovery is restored on AdvanceWeek.
	RefereeFatiguePerMatch float64 `koanf:"referee_fatigue_per_match"`
	RefereeFatigueRecovery float64 `koanf:"referee_fatigue_recovery"`

	// --- Finish selection ---

	// FinishWeights and SimpleFinishWeights are the base weighted tables
	// keyed by finish type name (pinfall, submission, knockout, countout,
	// disqualification). Match-class adjustments are applied on top.
	FinishWeights       map[string]float64 `koanf:"finish_weights"`
	SimpleFinishWeights map[string]float64 `koanf:"simple_finish_weights"`

	// --- Weekly upkeep ---

	// FatigueRecoveryPerDay drives competitor recovery during resets.
	FatigueRecoveryPerDay float64 `koanf:"fatigue_recovery_per_day"`

	// MomentumDecay is the weekly fraction of unspent momentum lost.
	MomentumDecay float64 `koanf:"momentum_decay"`
}

// New creates a Config populated with the stock simulation tuning.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		DefaultMode: "advanced",

		MatchQueueSize: 10_000,
		WorkerCount:    runtime.NumCPU(),
		DedupeSize:     100_000,

		HometownBonus:       1.05,
		FormVariance:        0.05,
		HighMoraleThreshold: 80,
		LowMoraleThreshold:  30,
		HighMoraleBoost:     1.05,
		LowMoralePenalty:    0.95,

		FeudHeatDivisor:      10,
		ChemistryBonus:       5,
		SimpleChemistryBonus: 3,

		PerformanceWeight:      0.6,
		PsychologyWeight:       0.2,
		PopularityWeight:       0.1,
		SimplePsychologyWeight: 0.15,
		SimplePopularityWeight: 0.08,

		RatingRandomness:       10,
		SimpleRatingRandomness: 8,
		WinnerRandomness:       10,
		SimpleWinnerRandomness: 8,
		SimpleScoreNoise:       5,

		MinMomentumShifts:    2,
		MaxMomentumShifts:    4,
		MomentumGainMin:      10,
		MomentumGainMax:      25,
		MomentumScoreFactor:  0.3,
		MomentumClimaxFactor: 0.2,
		NearFallChance:       0.5,
		NearFallBonus:        5,
		PostMatchAngleChance: 0.15,

		CrowdFavouriteBonus:     1.05,
		HardcoreSpecialistBonus: 10,
		SubmissionExpertMax:     10,
		BigMatchPerformerBonus:  1.05,
		LazyWorkerPenalty:       0.9,
		LazyWorkerChance:        0.3,
		ChemistryMasterBonus:    5,

		InjuriesEnabled:        true,
		BaseInjuryChance:       1,
		SimpleInjuryMultiplier: 0.5,
		InjuryFatigueThreshold: 50,
		InjuryFatigueRate:      1,
		LowStaminaThreshold:    30,
		LowStaminaMultiplier:   1.5,
		MaxInjuryChance:        90,

		MinorInjuryThreshold:    10,
		ModerateInjuryThreshold: 25,
		MinorRecoveryMin:        1,
		MinorRecoveryMax:        4,
		ModerateRecoveryMin:     4,
		ModerateRecoveryMax:     12,
		MajorRecoveryMin:        13,
		MajorRecoveryMax:        52,
		MinorStatPenalty:        0.95,
		ModerateStatPenalty:     0.85,
		MajorStatPenalty:        0.70,

		RefereeIncidentsEnabled:    true,
		RefereeIncidentBaseChance:  5,
		RefereeIncidentCap:         30,
		ClimaxIncidentMultiplier:   1.5,
		HighRiskIncidentMultiplier: 2,
		MaxRefereeMatchesPerWeek:   5,
		RefereeFatiguePerMatch:     15,
		RefereeFatigueRecovery:     20,

		FinishWeights: map[string]float64{
			"pinfall":          60,
			"submission":       20,
			"knockout":         10,
			"countout":         5,
			"disqualification": 5,
		},
		SimpleFinishWeights: map[string]float64{
			"pinfall":          65,
			"submission":       20,
			"knockout":         8,
			"countout":         4,
			"disqualification": 3,
		},

		FatigueRecoveryPerDay: 10,
		MomentumDecay:         0.10,
	}
}
