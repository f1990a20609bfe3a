// file: internals/features/soutenances/soutenances/service/selector.go
package service

import (
	"math/rand"
	"time"

	salleModel "soutenance_backend/internals/features/academics/salles/model"
	userModel "soutenance_backend/internals/features/users/user/model"
)

/* =========================
   Tie-break strategies
========================= */

// JurySelector picks k panel members among the teachers free for a slot.
// The default is an unweighted random sample; a fairness-aware strategy
// can be plugged in without touching the scheduling loop.
type JurySelector interface {
	Select(candidates []userModel.UserModel, k int) []userModel.UserModel
}

// SallePicker picks the single salle used for a whole scheduling batch.
type SallePicker interface {
	Pick(salles []salleModel.SalleModel) salleModel.SalleModel
}

type randomJurySelector struct {
	rng *rand.Rand
}

func NewRandomJurySelector() JurySelector {
	return &randomJurySelector{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *randomJurySelector) Select(candidates []userModel.UserModel, k int) []userModel.UserModel {
	if k >= len(candidates) {
		out := make([]userModel.UserModel, len(candidates))
		copy(out, candidates)
		return out
	}
	picked := make([]userModel.UserModel, 0, k)
	for _, i := range s.rng.Perm(len(candidates))[:k] {
		picked = append(picked, candidates[i])
	}
	return picked
}

type randomSallePicker struct {
	rng *rand.Rand
}

func NewRandomSallePicker() SallePicker {
	return &randomSallePicker{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *randomSallePicker) Pick(salles []salleModel.SalleModel) salleModel.SalleModel {
	return salles[p.rng.Intn(len(salles))]
}
