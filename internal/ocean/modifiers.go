package ocean

import (
	"fmt"
	"math"
)

const (
	ductBonusDb  = 6.0
	ductEchoGain = 1.5
	czBonusDb    = 8.0
	czEchoGain   = 1.3
	czIntervalM  = 30000.0
	czHalfWidthM = 1500.0
)

// Modifiers describes how the propagation path between two depths at a given
// range bends the sonar equation: a dB adjustment for passive SNR, a gain
// multiplier for active echoes, and notes naming the conditions that applied.
type Modifiers struct {
	SNRModifierDb float64  `json:"snr_modifier_db"`
	EchoGain      float64  `json:"echo_gain"`
	Notes         []string `json:"notes,omitempty"`
}

// AcousticModifiers evaluates path conditions between ownDepth and
// targetDepth over rangeM meters. Bonuses apply when both ends sit in the
// surface duct or when the range falls inside a convergence zone annulus.
// The thermocline shadow penalty is left to the detector; only a note is
// recorded here so hosts can display the condition.
func AcousticModifiers(ownDepthM, targetDepthM, rangeM float64) Modifiers {
	m := Modifiers{EchoGain: 1.0}

	if IsInSurfaceDuct(ownDepthM) && IsInSurfaceDuct(targetDepthM) {
		m.SNRModifierDb += ductBonusDb
		m.EchoGain *= ductEchoGain
		m.Notes = append(m.Notes, "surface duct coupling")
	}

	if zone := convergenceZone(rangeM); zone > 0 {
		m.SNRModifierDb += czBonusDb
		m.EchoGain *= czEchoGain
		m.Notes = append(m.Notes, fmt.Sprintf("convergence zone %d", zone))
	}

	if IsThermoclineBetween(ownDepthM, targetDepthM) {
		m.Notes = append(m.Notes, "cross-layer path")
	}

	return m
}

// convergenceZone returns the 1-based zone index when rangeM falls inside a
// convergence annulus, and 0 otherwise.
func convergenceZone(rangeM float64) int {
	if rangeM < czIntervalM-czHalfWidthM {
		return 0
	}
	n := math.Round(rangeM / czIntervalM)
	if n < 1 {
		return 0
	}
	if math.Abs(rangeM-n*czIntervalM) <= czHalfWidthM {
		return int(n)
	}
	return 0
}
