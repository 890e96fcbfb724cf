package stats

import (
	"encoding/json"
	"math"
	"strconv"
)

// SafeNumeric normalizes a raw stat value from the duck-typed upstream row.
//
// Returns nil when the value is missing, non-finite (NaN/Inf, including
// string sentinels), or not coercible to a number; otherwise the value
// rounded to precision decimal digits. Pass precision < 0 to skip rounding.
//
// Every numeric field in both stats records routes through this function;
// it is the single point of numeric normalization.
func SafeNumeric(v any, precision int) *float64 {
	f, ok := coerceFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if precision >= 0 {
		f = roundTo(f, precision)
	}
	return &f
}

func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func roundTo(f float64, precision int) float64 {
	m := math.Pow(10, float64(precision))
	return math.Round(f*m) / m
}

// safeInt is SafeNumeric truncated to an integer field (games played, age).
func safeInt(v any) *int {
	f := SafeNumeric(v, 0)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// safeString returns a string column value, or "" when absent.
func safeString(v any) string {
	s, _ := v.(string)
	return s
}

// Rounding contract: per-game counts carry 1 decimal, fractional percentages
// 3 decimals, rate stats expressed as counts 1 decimal, and the
// assist-to-turnover ratio 2 decimals. Applied at parse time; callers never
// re-round.
const (
	perGamePrecision = 1
	pctPrecision     = 3
	ratePrecision    = 1
	ratioPrecision   = 2
)

// ParseBasic converts one raw basic-mode row into a typed record. Pure;
// tolerant of missing and malformed fields. Returns nil for a nil row.
func ParseBasic(row Row) *BasicStats {
	if row == nil {
		return nil
	}
	return &BasicStats{
		GP:          safeInt(row["GP"]),
		GS:          safeInt(row["GS"]),
		MinPerGame:  SafeNumeric(row["MIN"], perGamePrecision),
		PtsPerGame:  SafeNumeric(row["PTS"], perGamePrecision),
		FgmPerGame:  SafeNumeric(row["FGM"], perGamePrecision),
		FgaPerGame:  SafeNumeric(row["FGA"], perGamePrecision),
		FgPct:       SafeNumeric(row["FG_PCT"], pctPrecision),
		Fg3mPerGame: SafeNumeric(row["FG3M"], perGamePrecision),
		Fg3aPerGame: SafeNumeric(row["FG3A"], perGamePrecision),
		Fg3Pct:      SafeNumeric(row["FG3_PCT"], pctPrecision),
		FtmPerGame:  SafeNumeric(row["FTM"], perGamePrecision),
		FtaPerGame:  SafeNumeric(row["FTA"], perGamePrecision),
		FtPct:       SafeNumeric(row["FT_PCT"], pctPrecision),
		OrebPerGame: SafeNumeric(row["OREB"], perGamePrecision),
		DrebPerGame: SafeNumeric(row["DREB"], perGamePrecision),
		RebPerGame:  SafeNumeric(row["REB"], perGamePrecision),
		AstPerGame:  SafeNumeric(row["AST"], perGamePrecision),
		TovPerGame:  SafeNumeric(row["TOV"], perGamePrecision),
		StlPerGame:  SafeNumeric(row["STL"], perGamePrecision),
		BlkPerGame:  SafeNumeric(row["BLK"], perGamePrecision),
		PfPerGame:   SafeNumeric(row["PF"], perGamePrecision),
	}
}

// ParseAdvanced converts one raw advanced-mode row into a typed record.
// Same tolerance rules as ParseBasic.
func ParseAdvanced(row Row) *AdvancedStats {
	if row == nil {
		return nil
	}
	return &AdvancedStats{
		OffRating: SafeNumeric(row["OFF_RATING"], ratePrecision),
		DefRating: SafeNumeric(row["DEF_RATING"], ratePrecision),
		NetRating: SafeNumeric(row["NET_RATING"], ratePrecision),
		AstPct:    SafeNumeric(row["AST_PCT"], pctPrecision),
		AstTo:     SafeNumeric(row["AST_TO"], ratioPrecision),
		AstRatio:  SafeNumeric(row["AST_RATIO"], ratePrecision),
		OrebPct:   SafeNumeric(row["OREB_PCT"], pctPrecision),
		DrebPct:   SafeNumeric(row["DREB_PCT"], pctPrecision),
		RebPct:    SafeNumeric(row["REB_PCT"], pctPrecision),
		TmTovPct:  SafeNumeric(row["TM_TOV_PCT"], ratePrecision),
		EfgPct:    SafeNumeric(row["EFG_PCT"], pctPrecision),
		TsPct:     SafeNumeric(row["TS_PCT"], pctPrecision),
		UsgPct:    SafeNumeric(row["USG_PCT"], pctPrecision),
		Pace:      SafeNumeric(row["PACE"], ratePrecision),
		Pie:       SafeNumeric(row["PIE"], pctPrecision),
		Ws:        SafeNumeric(row["WS"], ratePrecision),
	}
}
