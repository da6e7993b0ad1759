package ledger

import (
	"sort"
	"strings"

	"comptable/internal/models"
)

// Account hierarchy levels, derived solely from the code length.
const (
	LevelClass      = "class"
	LevelAccount    = "account"
	LevelSubaccount = "subaccount"
)

// Level classifies an account code: 1 digit is a class, 2 digits an account,
// anything longer a subaccount.
func Level(code string) string {
	switch len(code) {
	case 1:
		return LevelClass
	case 2:
		return LevelAccount
	default:
		return LevelSubaccount
	}
}

// BuildTree nests a flat, owner-scoped account list into class -> account ->
// subaccount trees keyed by code prefix. Roots and children are ordered by
// code. Accounts whose parent is absent from the input are dropped from the
// tree; their codes are returned so callers can surface the structural gap
// instead of losing it silently.
func BuildTree(accounts []models.Account) ([]models.Account, []string) {
	sorted := make([]models.Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	classSet := make(map[string]bool)
	accountSet := make(map[string]bool)
	for _, account := range sorted {
		switch Level(account.Code) {
		case LevelClass:
			classSet[account.Code] = true
		case LevelAccount:
			accountSet[account.Code] = true
		}
	}

	var orphans []string
	subsOf := make(map[string][]models.Account)
	for _, account := range sorted {
		if Level(account.Code) != LevelSubaccount {
			continue
		}
		parent := account.Code[:2]
		if !accountSet[parent] {
			orphans = append(orphans, account.Code)
			continue
		}
		account.Children = nil
		subsOf[parent] = append(subsOf[parent], account)
	}

	accountsOf := make(map[string][]models.Account)
	for _, account := range sorted {
		if Level(account.Code) != LevelAccount {
			continue
		}
		class := account.Code[:1]
		if !classSet[class] {
			orphans = append(orphans, account.Code)
			continue
		}
		account.Children = subsOf[account.Code]
		accountsOf[class] = append(accountsOf[class], account)
	}

	var roots []models.Account
	for _, account := range sorted {
		if Level(account.Code) != LevelClass {
			continue
		}
		account.Children = accountsOf[account.Code]
		roots = append(roots, account)
	}
	return roots, orphans
}

// FindByCode walks the tree depth first and returns the account with the
// given code.
func FindByCode(tree []models.Account, code string) (models.Account, bool) {
	for _, account := range tree {
		if account.Code == code {
			return account, true
		}
		if found, ok := FindByCode(account.Children, code); ok {
			return found, true
		}
	}
	return models.Account{}, false
}

// SearchAccounts returns every account whose code or label contains the
// query, case-insensitively, in depth-first order.
func SearchAccounts(tree []models.Account, query string) []models.Account {
	needle := strings.ToLower(query)
	var results []models.Account
	var walk func(accounts []models.Account)
	walk = func(accounts []models.Account) {
		for _, account := range accounts {
			if strings.Contains(strings.ToLower(account.Code), needle) ||
				strings.Contains(strings.ToLower(account.Label), needle) {
				results = append(results, account)
			}
			walk(account.Children)
		}
	}
	walk(tree)
	return results
}

// AccountPath returns the root-to-node path for a code, or an empty slice
// when the code is not in the tree.
func AccountPath(tree []models.Account, code string) []models.Account {
	for _, account := range tree {
		if account.Code == code {
			return []models.Account{account}
		}
		if rest := AccountPath(account.Children, code); len(rest) > 0 {
			return append([]models.Account{account}, rest...)
		}
	}
	return nil
}
