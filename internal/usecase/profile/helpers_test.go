package profile

import (
	"genesis-lending/internal/domain/uow"
	"genesis-lending/internal/domain/user"
	"genesis-lending/internal/testutil/loanmock"
)

func uowRepos(users user.Repository) uow.Repos {
	return uow.Repos{Loans: &loanmock.Repo{}, Users: users}
}
