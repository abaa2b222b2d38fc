// Package odds converts two teams' strength scores plus a venue context
// into calibrated market probabilities and decimal odds across three
// markets: 1X2, Over/Under 2.5 goals, and Both-Teams-To-Score.
package odds

import (
	"fmt"
	"math"

	"strengthgrid.dev/strength/internal/config"
)

// Context is the venue/competition relationship between the two sides.
type Context string

const (
	ContextSameCompetition  Context = "same-competition"
	ContextCrossCompetition Context = "cross-competition"
	ContextNeutralVenue     Context = "neutral-venue"
)

// OutcomePrice is one market outcome's probability and derived decimal odds.
type OutcomePrice struct {
	Probability float64 `json:"probability"`
	DecimalOdds float64 `json:"decimal_odds"`
}

// Market1X2 holds the home/draw/away prices.
type Market1X2 struct {
	Home OutcomePrice `json:"home"`
	Draw OutcomePrice `json:"draw"`
	Away OutcomePrice `json:"away"`
}

// MarketTwoWay holds a binary market's yes/no (or over/under) prices.
type MarketTwoWay struct {
	First  OutcomePrice `json:"first"`
	Second OutcomePrice `json:"second"`
}

// Quote is the full odds payload for one (home, away) pair.
type Quote struct {
	Context          Context      `json:"context"`
	OneXTwo          Market1X2    `json:"one_x_two"`
	OverUnder        MarketTwoWay `json:"over_under_2_5"`
	BothTeamsToScore MarketTwoWay `json:"btts"`
	MostLikelyScore  string       `json:"most_likely_score"`
	ExpectedGoals    float64      `json:"expected_goals"`
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func priceWithMargin(probability, margin float64) OutcomePrice {
	odds := (1 + margin) / probability
	return OutcomePrice{
		Probability: probability,
		DecimalOdds: math.Round(odds*100) / 100,
	}
}

// Compute1X2 implements the six-step algorithm: raw win shares, home boost,
// draw probability as a function of the strength gap, then margin-adjusted
// decimal odds. sA and sB are the strengths selected per the context rule;
// context controls whether the home boost applies.
func Compute1X2(sA, sB float64, context Context, cfg config.OddsConfig) Market1X2 {
	var pA0, pB0 float64
	if sA+sB == 0 {
		pA0, pB0 = 0.5, 0.5
	} else {
		pA0 = sA / (sA + sB)
		pB0 = 1 - pA0
	}

	if context != ContextNeutralVenue {
		alpha := cfg.HomeBoostAlpha
		pA0 *= 1 + alpha
		pB0 *= 1 - alpha
		total := pA0 + pB0
		pA0 /= total
		pB0 /= total
	}

	gapNorm := math.Min(math.Abs(sA-sB)*cfg.DrawK, 1.0)
	pD := clamp(cfg.DrawMax-cfg.DrawBeta*gapNorm, cfg.DrawMin, cfg.DrawMax)

	pH := (1 - pD) * pA0
	pA := (1 - pD) * pB0

	return Market1X2{
		Home: priceWithMargin(pH, cfg.Margin),
		Draw: priceWithMargin(pD, cfg.Margin),
		Away: priceWithMargin(pA, cfg.Margin),
	}
}

// The floor/ceiling constants bound the Over/Under and BTTS monotonic
// functions so probabilities always stay within their contractual ranges.
const (
	overUnderProbFloor   = 0.35
	overUnderProbCeiling = 0.75
	bttsProbFloor        = 0.35
	bttsProbCeiling      = 0.80
)

// ExpectedGoals derives e, a monotonic increasing function of combined
// attacking quality. offensiveA/B and defensiveA/B are normalized [0,1]
// parameter values when available; when either pair is missing, callers
// fall back to overall strengths for both arguments.
func ExpectedGoals(offensiveA, defensiveA, offensiveB, defensiveB float64) float64 {
	attackA := clamp(offensiveA-defensiveB+0.5, 0, 1)
	attackB := clamp(offensiveB-defensiveA+0.5, 0, 1)
	// 1.5 to 3.5 goals across the full [0,1]x[0,1] attacking-quality range.
	return 1.5 + (attackA+attackB)*1.0
}

// ComputeOverUnder derives the Over/Under 2.5 market from expected goals.
// The over probability increases monotonically with e and is bounded to
// [0.35, 0.75] by construction (a logistic centered on the 2.5 line).
func ComputeOverUnder(expectedGoals float64, cfg config.OddsConfig) MarketTwoWay {
	// logistic centered at e=2.5; e in [1.5,3.5] maps to about 0.41-0.69, inside the floor/ceiling.
	x := (expectedGoals - 2.5) * 1.8
	raw := 1 / (1 + math.Exp(-x))
	over := overUnderProbFloor + raw*(overUnderProbCeiling-overUnderProbFloor)
	under := 1 - over

	return MarketTwoWay{
		First:  priceWithMargin(over, cfg.Margin),
		Second: priceWithMargin(under, cfg.Margin),
	}
}

// ComputeBTTS derives Both-Teams-To-Score from the weaker side's attacking
// quality: min(attackA, attackB) in [0,1], mapped monotonically into
// [0.35, 0.80].
func ComputeBTTS(attackA, attackB float64, cfg config.OddsConfig) MarketTwoWay {
	weakest := math.Min(attackA, attackB)
	yes := bttsProbFloor + weakest*(bttsProbCeiling-bttsProbFloor)
	no := 1 - yes

	return MarketTwoWay{
		First:  priceWithMargin(yes, cfg.Margin),
		Second: priceWithMargin(no, cfg.Margin),
	}
}

// MostLikelyScore is a pure, deterministic lookup keyed on the dominant
// 1X2 outcome and expected goals rounded to the nearest half goal.
func MostLikelyScore(market Market1X2, expectedGoals float64) string {
	half := math.Round(expectedGoals*2) / 2
	total := int(math.Round(half))
	if total < 1 {
		total = 1
	}

	dominant := "draw"
	best := market.Draw.Probability
	if market.Home.Probability > best {
		dominant, best = "home", market.Home.Probability
	}
	if market.Away.Probability > best {
		dominant = "away"
	}

	homeGoals := total / 2
	awayGoals := total - homeGoals
	switch dominant {
	case "home":
		homeGoals, awayGoals = awayGoals+1, homeGoals
		if homeGoals <= awayGoals {
			homeGoals = awayGoals + 1
		}
	case "away":
		if awayGoals <= homeGoals {
			awayGoals = homeGoals + 1
		}
	default:
		homeGoals, awayGoals = total/2, total/2
	}

	return fmt.Sprintf("%d-%d", homeGoals, awayGoals)
}

// Quote assembles the full response for a pair of strengths. attackA/B and
// defenseA/B should be offensive_rating/defensive_rating normalized values
// when both teams have them; otherwise pass the selected overall strength
// for all four arguments, per §4.5's fallback rule.
func ComputeQuote(sA, sB float64, attackA, defenseA, attackB, defenseB float64, context Context, cfg config.OddsConfig) Quote {
	oneXTwo := Compute1X2(sA, sB, context, cfg)
	eg := ExpectedGoals(attackA, defenseA, attackB, defenseB)
	attackQualityA := clamp(attackA-defenseB+0.5, 0, 1)
	attackQualityB := clamp(attackB-defenseA+0.5, 0, 1)

	return Quote{
		Context:          context,
		OneXTwo:          oneXTwo,
		OverUnder:        ComputeOverUnder(eg, cfg),
		BothTeamsToScore: ComputeBTTS(attackQualityA, attackQualityB, cfg),
		MostLikelyScore:  MostLikelyScore(oneXTwo, eg),
		ExpectedGoals:    eg,
	}
}
