package calculation

import (
	"github.com/rgehrsitz/pajak/internal/domain"
	"github.com/shopspring/decimal"
)

// TER RATE TABLES:
//
// Tarif Efektif Rata-rata for monthly PPh 21 withholding, transcribed from the
// annex of PP 58/2023. Each row is the inclusive upper bound of monthly gross
// income and the rate applied to the whole amount. Income above the last row
// takes the table's top rate (34% in all three tables).
//
//   A: TK/0, TK/1, K/0
//   B: TK/2, TK/3, K/1, K/2
//   C: K/3
//
// The rows are regulatory constants, not derivable by formula. Rates are kept
// as percentage strings so every value is exact in decimal.

// TERBracket is one row of a TER table
type TERBracket struct {
	UpTo decimal.Decimal `json:"up_to"`
	Rate decimal.Decimal `json:"rate"`
}

// RateTable is the full schedule for one category
type RateTable struct {
	Category domain.Category `json:"category"`
	Brackets []TERBracket    `json:"brackets"`
	TopRate  decimal.Decimal `json:"top_rate"`
}

func row(upTo int64, percent string) TERBracket {
	return TERBracket{
		UpTo: decimal.NewFromInt(upTo),
		Rate: decimal.RequireFromString(percent).Shift(-2),
	}
}

var terTopRate = decimal.RequireFromString("34").Shift(-2)

var terTableA = RateTable{
	Category: domain.CategoryA,
	TopRate:  terTopRate,
	Brackets: []TERBracket{
		row(5_400_000, "0"),
		row(5_650_000, "0.25"),
		row(5_950_000, "0.5"),
		row(6_300_000, "0.75"),
		row(6_750_000, "1"),
		row(7_500_000, "1.25"),
		row(8_550_000, "1.5"),
		row(9_650_000, "1.75"),
		row(10_050_000, "2"),
		row(10_350_000, "2.25"),
		row(10_700_000, "2.5"),
		row(11_050_000, "3"),
		row(11_600_000, "3.5"),
		row(12_500_000, "4"),
		row(13_750_000, "5"),
		row(15_100_000, "6"),
		row(16_950_000, "7"),
		row(19_750_000, "8"),
		row(24_150_000, "9"),
		row(26_450_000, "10"),
		row(28_000_000, "11"),
		row(30_050_000, "12"),
		row(32_400_000, "13"),
		row(35_400_000, "14"),
		row(39_100_000, "15"),
		row(43_850_000, "16"),
		row(47_800_000, "17"),
		row(51_400_000, "18"),
		row(56_300_000, "19"),
		row(62_200_000, "20"),
		row(68_600_000, "21"),
		row(77_500_000, "22"),
		row(89_000_000, "23"),
		row(103_000_000, "24"),
		row(125_000_000, "25"),
		row(157_000_000, "26"),
		row(206_000_000, "27"),
		row(337_000_000, "28"),
		row(454_000_000, "29"),
		row(550_000_000, "30"),
		row(695_000_000, "31"),
		row(910_000_000, "32"),
		row(1_400_000_000, "33"),
	},
}

var terTableB = RateTable{
	Category: domain.CategoryB,
	TopRate:  terTopRate,
	Brackets: []TERBracket{
		row(6_200_000, "0"),
		row(6_500_000, "0.25"),
		row(6_850_000, "0.5"),
		row(7_300_000, "0.75"),
		row(9_200_000, "1"),
		row(10_750_000, "1.5"),
		row(11_250_000, "2"),
		row(11_600_000, "2.5"),
		row(12_600_000, "3"),
		row(13_600_000, "4"),
		row(14_950_000, "5"),
		row(16_400_000, "6"),
		row(18_450_000, "7"),
		row(21_850_000, "8"),
		row(26_000_000, "9"),
		row(27_700_000, "10"),
		row(29_350_000, "11"),
		row(31_450_000, "12"),
		row(33_950_000, "13"),
		row(37_100_000, "14"),
		row(41_100_000, "15"),
		row(45_800_000, "16"),
		row(49_500_000, "17"),
		row(53_800_000, "18"),
		row(58_500_000, "19"),
		row(64_000_000, "20"),
		row(71_000_000, "21"),
		row(80_000_000, "22"),
		row(93_000_000, "23"),
		row(109_000_000, "24"),
		row(129_000_000, "25"),
		row(163_000_000, "26"),
		row(211_000_000, "27"),
		row(374_000_000, "28"),
		row(459_000_000, "29"),
		row(555_000_000, "30"),
		row(704_000_000, "31"),
		row(957_000_000, "32"),
		row(1_405_000_000, "33"),
	},
}

var terTableC = RateTable{
	Category: domain.CategoryC,
	TopRate:  terTopRate,
	Brackets: []TERBracket{
		row(6_600_000, "0"),
		row(6_950_000, "0.25"),
		row(7_350_000, "0.5"),
		row(7_800_000, "0.75"),
		row(8_850_000, "1"),
		row(9_800_000, "1.25"),
		row(10_950_000, "1.5"),
		row(11_200_000, "1.75"),
		row(12_050_000, "2"),
		row(12_950_000, "3"),
		row(14_150_000, "4"),
		row(15_550_000, "5"),
		row(17_050_000, "6"),
		row(19_500_000, "7"),
		row(22_700_000, "8"),
		row(26_600_000, "9"),
		row(28_100_000, "10"),
		row(30_100_000, "11"),
		row(32_600_000, "12"),
		row(35_400_000, "13"),
		row(38_900_000, "14"),
		row(43_000_000, "15"),
		row(47_400_000, "16"),
		row(51_200_000, "17"),
		row(55_800_000, "18"),
		row(60_400_000, "19"),
		row(66_700_000, "20"),
		row(74_500_000, "21"),
		row(83_200_000, "22"),
		row(95_600_000, "23"),
		row(110_000_000, "24"),
		row(134_000_000, "25"),
		row(169_000_000, "26"),
		row(221_000_000, "27"),
		row(390_000_000, "28"),
		row(463_000_000, "29"),
		row(561_000_000, "30"),
		row(709_000_000, "31"),
		row(965_000_000, "32"),
		row(1_419_000_000, "33"),
	},
}

// RateTableFor returns a copy of the TER table for a category. Unknown
// categories fall back to table A.
func RateTableFor(cat domain.Category) RateTable {
	t := tableFor(cat)
	return RateTable{
		Category: t.Category,
		Brackets: append([]TERBracket(nil), t.Brackets...),
		TopRate:  t.TopRate,
	}
}

func tableFor(cat domain.Category) *RateTable {
	switch cat {
	case domain.CategoryB:
		return &terTableB
	case domain.CategoryC:
		return &terTableC
	default:
		return &terTableA
	}
}

// Resolve returns the rate of the first row whose bound is at or above income,
// or the top rate when income exceeds every row.
func (t *RateTable) Resolve(monthlyIncome decimal.Decimal) decimal.Decimal {
	income := nonNegative(monthlyIncome)
	for _, b := range t.Brackets {
		if income.LessThanOrEqual(b.UpTo) {
			return b.Rate
		}
	}
	return t.TopRate
}

// ResolveRate looks up the TER rate for a category and monthly gross income.
// Negative income is treated as zero.
func ResolveRate(cat domain.Category, monthlyIncome decimal.Decimal) decimal.Decimal {
	return tableFor(cat).Resolve(monthlyIncome)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
