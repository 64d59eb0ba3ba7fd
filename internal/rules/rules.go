// Package rules holds the table rule configuration recognised by the round
// engine and the simulator, with HCL file loading and validation.
package rules

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Rules is the immutable rule set for a table. The zero value is not valid;
// use Default and override.
type Rules struct {
	// HitSoft17 makes the dealer hit a soft 17 (H17) instead of standing (S17).
	HitSoft17 bool

	// LateSurrender allows the player to forfeit half the bet on the first
	// decision of the original hand.
	LateSurrender bool

	// DAS allows doubling on hands that resulted from a split.
	DAS bool

	// ResplitLimit is the maximum number of split events per original hand,
	// shared across all of its descendants.
	ResplitLimit int

	// Peek makes the dealer check for blackjack before the player acts when a
	// ten-value card or Ace is showing.
	Peek bool

	// Blackjack3to2 pays naturals 1.5x the bet; otherwise even money.
	Blackjack3to2 bool
}

// Default returns the documented default rule set: H17, late surrender, DAS,
// three resplits, dealer peek, 3:2 naturals.
func Default() Rules {
	return Rules{
		HitSoft17:     true,
		LateSurrender: true,
		DAS:           true,
		ResplitLimit:  3,
		Peek:          true,
		Blackjack3to2: true,
	}
}

// Validate rejects malformed rule values before any round is played.
func (r Rules) Validate() error {
	if r.ResplitLimit < 0 {
		return fmt.Errorf("resplit_limit must be >= 0, got %d", r.ResplitLimit)
	}
	return nil
}

// Label returns the conventional shorthand for the soft-17 rule.
func (r Rules) Label() string {
	if r.HitSoft17 {
		return "H17"
	}
	return "S17"
}

// fileConfig mirrors Rules for HCL decoding. Pointer fields distinguish
// "omitted" from an explicit false/zero so defaults survive partial files.
type fileConfig struct {
	Rules *fileRules `hcl:"rules,block"`
}

type fileRules struct {
	HitSoft17     *bool `hcl:"hit_soft_17,optional"`
	LateSurrender *bool `hcl:"late_surrender,optional"`
	DAS           *bool `hcl:"das,optional"`
	ResplitLimit  *int  `hcl:"resplit_limit,optional"`
	Peek          *bool `hcl:"peek,optional"`
	Blackjack3to2 *bool `hcl:"blackjack_3to2,optional"`
}

// LoadFile reads a rules HCL file and overlays it on the defaults.
// A missing file yields the defaults; unrecognised keys are an error.
func LoadFile(filename string) (Rules, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to parse rules file: %s", diags.Error())
	}

	var config fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to decode rules file: %s", diags.Error())
	}

	rules := Default()
	if config.Rules != nil {
		overlay(&rules, config.Rules)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func overlay(rules *Rules, file *fileRules) {
	if file.HitSoft17 != nil {
		rules.HitSoft17 = *file.HitSoft17
	}
	if file.LateSurrender != nil {
		rules.LateSurrender = *file.LateSurrender
	}
	if file.DAS != nil {
		rules.DAS = *file.DAS
	}
	if file.ResplitLimit != nil {
		rules.ResplitLimit = *file.ResplitLimit
	}
	if file.Peek != nil {
		rules.Peek = *file.Peek
	}
	if file.Blackjack3to2 != nil {
		rules.Blackjack3to2 = *file.Blackjack3to2
	}
}
