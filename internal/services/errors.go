package services

import (
	"fmt"

	"github.com/yungbote/storefront-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/storefront-backend/internal/domain/aggregates"
)

func notFound(op, entity string, id uint) error {
	return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("%s %d not found", entity, id), nil)
}

func invalid(op, msg string) error {
	return domainagg.NewError(domainagg.CodeValidation, op, msg, nil)
}

// storeErr maps a repository failure onto the aggregate error taxonomy.
func storeErr(op string, err error) error {
	return aggregates.MapError(op, err)
}
