package promo

import (
	"errors"
	"strings"
)

var (
	// ErrBlankCode is returned when the submitted code is empty after trimming.
	// The presentation layer prompts for input rather than reporting a failure.
	ErrBlankCode = errors.New("promo code is blank")
	// ErrUnknownCode is returned when a non-empty code matches no rule.
	ErrUnknownCode = errors.New("promo code not recognised")
)

// Outcome classifies the result of a promo application for the notification
// channel. The engine never produces message text.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeBlank   Outcome = "blank"
	OutcomeInvalid Outcome = "invalid"
)

// Rule describes a single recognised promotion code.
type Rule struct {
	Code       string
	PercentBps int
}

// Discount computes the rule's discount for the given subtotal, clamped to
// the subtotal so totals can never go negative downstream.
func (r Rule) Discount(subtotal float64) float64 {
	if subtotal <= 0 || r.PercentBps <= 0 {
		return 0
	}
	discount := subtotal * float64(r.PercentBps) / 10000
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

// Result carries the classification and the discount derived at apply time.
type Result struct {
	Outcome  Outcome
	Code     string
	Discount float64
}

// RuleSet is an ordered collection of promotion rules.
type RuleSet []Rule

// BaseRules returns the storefront's fixed promotion rule set.
func BaseRules() RuleSet {
	return RuleSet{
		{Code: "SAVE10", PercentBps: 1000},
	}
}

// Find locates a rule by code, case-insensitively.
func (rs RuleSet) Find(code string) (Rule, bool) {
	for _, r := range rs {
		if strings.EqualFold(r.Code, code) {
			return r, true
		}
	}
	return Rule{}, false
}

// Apply validates the code against the rule set and computes the discount
// from the subtotal supplied by the caller. The discount is always derived
// from the current subtotal at apply time; callers re-run Apply whenever the
// cart changes so a previously applied code never tracks a stale subtotal.
//
// A blank code and an unrecognised code are distinct outcomes; both carry a
// zero discount and a non-nil error so callers can reset any prior discount.
func Apply(rules RuleSet, subtotal float64, code string) (Result, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Result{Outcome: OutcomeBlank}, ErrBlankCode
	}
	rule, ok := rules.Find(trimmed)
	if !ok {
		return Result{Outcome: OutcomeInvalid}, ErrUnknownCode
	}
	return Result{
		Outcome:  OutcomeApplied,
		Code:     rule.Code,
		Discount: rule.Discount(subtotal),
	}, nil
}
