package risk

import "fmt"

type Violation struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Decision is advisory. A planned trade with violations can still be
// journaled.
type Decision struct {
	Allowed    bool        `json:"allowed"`
	Violations []Violation `json:"violations,omitempty"`
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

func Evaluate(p Policy, riskPct float64, plan Plan) Decision {
	d := Decision{Allowed: true}

	if p.MaxRiskPct > 0 && riskPct > p.MaxRiskPct {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("planned risk %.2f%% exceeds max %.2f%%", riskPct, p.MaxRiskPct))
	}
	if plan.RewardPips == 0 {
		d.add("NO_TAKE_PROFIT", "no take profit set")
		return d
	}
	if plan.RR < p.MinRR {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %.2f below minimum %.2f", plan.RR, p.MinRR))
	}
	return d
}
