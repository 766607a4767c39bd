package scoring

// Score bounds follow the FICO range.
const (
	BaseScore = 600
	MinScore  = 300
	MaxScore  = 850
)

// Rule keys identify each adjustment in breakdowns and in the criteria descriptor.
const (
	RuleAgeUnder25          = "ageUnder25"
	RuleAgeOver60           = "ageOver60"
	RuleIncomeOver200k      = "incomeOver200k"
	RuleIncomeOver100k      = "incomeOver100k"
	RuleIncomeOver50k       = "incomeOver50k"
	RuleDebtRatioOver40pct  = "debtRatioOver40pct"
	RuleBadCreditHistory    = "badCreditHistory"
	RuleLoanRatioOver50pct  = "loanRatioOver50pct"
	RuleLoanRatioUnder10pct = "loanRatioUnder10pct"
	RuleLoanRatioUnder25pct = "loanRatioUnder25pct"
)

const (
	youngAgeLimit  = 25
	seniorAgeLimit = 60

	incomeTierHigh   = 200000.0
	incomeTierUpper  = 100000.0
	incomeTierMiddle = 50000.0

	debtRatioLimit = 0.4

	loanRatioHigh    = 0.5
	loanRatioVeryLow = 0.1
	loanRatioLow     = 0.25

	lowRiskFloor    = 750
	mediumRiskFloor = 650

	lowRiskLabel    = ">=750"
	mediumRiskLabel = "650-749"
	highRiskLabel   = "<650"
)

// ruleDeltas is the single source of every adjustment magnitude.
var ruleDeltas = map[string]int{
	RuleAgeUnder25:          -50,
	RuleAgeOver60:           -30,
	RuleIncomeOver200k:      120,
	RuleIncomeOver100k:      80,
	RuleIncomeOver50k:       40,
	RuleDebtRatioOver40pct:  -80,
	RuleBadCreditHistory:    -150,
	RuleLoanRatioOver50pct:  -50,
	RuleLoanRatioUnder10pct: 30,
	RuleLoanRatioUnder25pct: 15,
}

// RuleDelta returns the score adjustment applied by the named rule.
func RuleDelta(rule string) (int, bool) {
	delta, ok := ruleDeltas[rule]
	return delta, ok
}
