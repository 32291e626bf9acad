package store

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"

	"github.com/pricofy/football-api/internal/domain"
)

// Attribute names
const (
	attrMatchID      = "matchId"
	attrDescription  = "description"
	attrTeamNameA    = "teamNameA"
	attrTeamNameB    = "teamNameB"
	attrTeamNames    = "teamNames"
	attrTranslations = "translations"
)

// updateExpression compiles a partial update into one SET clause per
// present field. teamNames is recomputed from the supplied names only.
func updateExpression(u domain.MatchUpdate) (expression.Expression, error) {
	if u.IsEmpty() {
		return expression.Expression{}, domain.ErrEmptyUpdate
	}

	var ub expression.UpdateBuilder
	if u.Description != nil {
		ub = ub.Set(expression.Name(attrDescription), expression.Value(*u.Description))
	}
	if u.TeamNameA != nil {
		ub = ub.Set(expression.Name(attrTeamNameA), expression.Value(*u.TeamNameA))
	}
	if u.TeamNameB != nil {
		ub = ub.Set(expression.Name(attrTeamNameB), expression.Value(*u.TeamNameB))
	}
	if names := u.TeamNames(); names != nil {
		ub = ub.Set(expression.Name(attrTeamNames), expression.Value(names))
	}

	return expression.NewBuilder().WithUpdate(ub).Build()
}

// ensureTranslationsExpression initializes the translations map when the
// record has none, so the per-language SET below has a parent to write into.
func ensureTranslationsExpression() (expression.Expression, error) {
	name := expression.Name(attrTranslations)
	ub := expression.Set(name, name.IfNotExists(expression.Value(map[string]string{})))
	return expression.NewBuilder().WithUpdate(ub).Build()
}

// putTranslationExpression sets translations.<lang> only when it is absent.
func putTranslationExpression(lang, text string) (expression.Expression, error) {
	path := expression.Name(attrTranslations + "." + lang)
	ub := expression.Set(path, expression.Value(text))
	cond := expression.AttributeNotExists(path)
	return expression.NewBuilder().WithUpdate(ub).WithCondition(cond).Build()
}

// partitionQueryExpression selects every item with the given matchId.
func partitionQueryExpression(matchID int) (expression.Expression, error) {
	kc := expression.Key(attrMatchID).Equal(expression.Value(matchID))
	return expression.NewBuilder().WithKeyCondition(kc).Build()
}
