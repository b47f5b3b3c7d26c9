package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/givebridge/givebridge/internal/middleware"
	"github.com/givebridge/givebridge/internal/types"
)

func GetCurrentAccount(ctx *gin.Context) (middleware.AuthenticatedAccount, error) {
	account, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedAccount{}, fmt.Errorf("Account not authenticated")
	}

	authenticatedAccount, ok := account.(middleware.AuthenticatedAccount)

	if !ok {
		return middleware.AuthenticatedAccount{}, fmt.Errorf("Invalid account type in context")
	}

	return authenticatedAccount, nil
}
