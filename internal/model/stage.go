package model

// Stage is one step of the persuasion arc an email sequence walks through.
type Stage string

const (
	StageProblemAwareness  Stage = "problem_awareness"
	StageProblemAgitation  Stage = "problem_agitation"
	StageSolutionReveal    Stage = "solution_reveal"
	StageBenefitProof      Stage = "benefit_proof"
	StageSocialValidation  Stage = "social_validation"
	StageUrgencyCreation   Stage = "urgency_creation"
	StageObjectionHandling Stage = "objection_handling"
	StageCallToAction      Stage = "call_to_action"
)

// Stages returns all eight persuasion stages in arc order.
func Stages() []Stage {
	return []Stage{
		StageProblemAwareness,
		StageProblemAgitation,
		StageSolutionReveal,
		StageBenefitProof,
		StageSocialValidation,
		StageUrgencyCreation,
		StageObjectionHandling,
		StageCallToAction,
	}
}

// EmailStages maps the eight-stage arc onto the seven-email sequence.
// Objection handling is folded into the final call-to-action email (the
// closer addresses the top objection before the ask), so it does not get
// an email of its own. The mapping is fixed: prompts, parsers, and callers
// all rely on it staying stable.
func EmailStages() []Stage {
	return []Stage{
		StageProblemAwareness,
		StageProblemAgitation,
		StageSolutionReveal,
		StageBenefitProof,
		StageSocialValidation,
		StageUrgencyCreation,
		StageCallToAction,
	}
}

// Valid reports whether s is one of the eight defined stages.
func (s Stage) Valid() bool {
	for _, st := range Stages() {
		if s == st {
			return true
		}
	}
	return false
}
