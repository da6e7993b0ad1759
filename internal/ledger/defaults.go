package ledger

import "comptable/internal/models"

func ptr(s string) *string { return &s }

// DefaultChart returns the OHADA seed chart created for each new owner:
// classes 1-7 with their usual accounts and subaccounts. The list is flat;
// BuildTree nests it.
func DefaultChart() []models.Account {
	return []models.Account{
		{Code: "1", Label: "Comptes de ressources durables", Category: ptr("equity")},
		{Code: "10", Label: "Capital", NormalBalance: ptr("credit")},
		{Code: "101", Label: "Capital social"},
		{Code: "102", Label: "Capital souscrit - non appelé"},
		{Code: "109", Label: "Actionnaires, capital souscrit - non appelé"},
		{Code: "11", Label: "Réserves", NormalBalance: ptr("credit")},
		{Code: "111", Label: "Réserve légale"},
		{Code: "112", Label: "Réserves statutaires"},
		{Code: "113", Label: "Réserves facultatives"},
		{Code: "12", Label: "Report à nouveau"},
		{Code: "121", Label: "Report à nouveau créditeur"},
		{Code: "129", Label: "Report à nouveau débiteur"},

		{Code: "2", Label: "Comptes d'actif immobilisé", Category: ptr("asset")},
		{Code: "21", Label: "Immobilisations incorporelles", NormalBalance: ptr("debit")},
		{Code: "211", Label: "Frais de développement"},
		{Code: "212", Label: "Brevets, licences et logiciels"},
		{Code: "213", Label: "Fonds commercial"},
		{Code: "22", Label: "Terrains", NormalBalance: ptr("debit")},
		{Code: "221", Label: "Terrains agricoles et forestiers"},
		{Code: "222", Label: "Terrains nus"},
		{Code: "223", Label: "Terrains bâtis"},

		{Code: "3", Label: "Comptes de stocks", Category: ptr("asset")},
		{Code: "31", Label: "Marchandises", NormalBalance: ptr("debit")},
		{Code: "311", Label: "Marchandises A"},
		{Code: "312", Label: "Marchandises B"},
		{Code: "32", Label: "Matières premières", NormalBalance: ptr("debit")},
		{Code: "321", Label: "Matières premières A"},
		{Code: "322", Label: "Matières premières B"},

		{Code: "4", Label: "Comptes de tiers"},
		{Code: "40", Label: "Fournisseurs", NormalBalance: ptr("credit")},
		{Code: "401", Label: "Fournisseurs, dettes en compte"},
		{Code: "402", Label: "Fournisseurs, effets à payer"},
		{Code: "41", Label: "Clients", NormalBalance: ptr("debit")},
		{Code: "411", Label: "Clients, ventes en compte"},
		{Code: "412", Label: "Clients, effets à recevoir"},

		{Code: "5", Label: "Comptes de trésorerie", Category: ptr("asset")},
		{Code: "51", Label: "Banques", NormalBalance: ptr("debit")},
		{Code: "511", Label: "Banque A"},
		{Code: "512", Label: "Banque B"},
		{Code: "52", Label: "Caisse", NormalBalance: ptr("debit")},
		{Code: "521", Label: "Caisse principale"},
		{Code: "522", Label: "Caisse annexe"},

		{Code: "6", Label: "Comptes de charges", Category: ptr("expense")},
		{Code: "60", Label: "Achats", NormalBalance: ptr("debit")},
		{Code: "601", Label: "Achats de marchandises"},
		{Code: "602", Label: "Achats de matières premières"},
		{Code: "61", Label: "Services extérieurs", NormalBalance: ptr("debit")},
		{Code: "611", Label: "Sous-traitance générale"},
		{Code: "612", Label: "Locations"},

		{Code: "7", Label: "Comptes de produits", Category: ptr("revenue")},
		{Code: "70", Label: "Ventes", NormalBalance: ptr("credit")},
		{Code: "701", Label: "Ventes de marchandises"},
		{Code: "702", Label: "Ventes de produits finis"},
		{Code: "71", Label: "Production stockée", NormalBalance: ptr("credit")},
		{Code: "711", Label: "Variation des stocks de produits finis"},
		{Code: "712", Label: "Variation des stocks de produits en cours"},
	}
}
