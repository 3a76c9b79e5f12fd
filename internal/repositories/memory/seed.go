package memory

import (
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

// DefaultProducts returns the starter catalog used when no external product
// source is configured. Prices are in centavos.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "prod-001", Code: "CAM-BAS-01", Name: "Camiseta Basica Branca", Description: "Camiseta de algodao, corte unissex", Category: domain.CategoryClothing, Price: 4990, Image: "/images/products/camiseta-basica.jpg", Stock: 120},
		{ID: "prod-002", Code: "CAL-JEA-02", Name: "Calca Jeans Slim", Description: "Calca jeans azul escuro, corte slim", Category: domain.CategoryClothing, Price: 15990, Image: "/images/products/calca-jeans.jpg", Stock: 45},
		{ID: "prod-003", Code: "TEN-RUN-03", Name: "Tenis Runner Pro", Description: "Tenis de corrida com amortecimento", Category: domain.CategoryShoes, Price: 29990, Image: "/images/products/tenis-runner.jpg", Stock: 30},
		{ID: "prod-004", Code: "SAP-SOC-04", Name: "Sapato Social Couro", Description: "Sapato social em couro legitimo", Category: domain.CategoryShoes, Price: 24990, Image: "/images/products/sapato-social.jpg", Stock: 18},
		{ID: "prod-005", Code: "BON-TRU-05", Name: "Bone Trucker", Description: "Bone com tela e ajuste snapback", Category: domain.CategoryAccessories, Price: 5990, Image: "/images/products/bone-trucker.jpg", Stock: 80},
		{ID: "prod-006", Code: "CIN-COU-06", Name: "Cinto de Couro", Description: "Cinto marrom com fivela metalica", Category: domain.CategoryAccessories, Price: 7990, Image: "/images/products/cinto-couro.jpg", Stock: 60},
		{ID: "prod-007", Code: "FON-BT-07", Name: "Fone Bluetooth", Description: "Fone sem fio com estojo de recarga", Category: domain.CategoryElectronics, Price: 19990, Image: "/images/products/fone-bluetooth.jpg", Stock: 25},
		{ID: "prod-008", Code: "REL-SMA-08", Name: "Relogio Smartwatch", Description: "Relogio inteligente com monitor cardiaco", Category: domain.CategoryElectronics, Price: 39990, Image: "/images/products/smartwatch.jpg", Stock: 12},
	}
}

// DefaultCustomers returns the starter customer directory.
func DefaultCustomers() []domain.Customer {
	createdAt := time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC)
	return []domain.Customer{
		{
			ID:        "cust-001",
			Name:      "Maria Oliveira",
			Avatar:    "https://ui-avatars.com/api/?name=Maria+Oliveira&background=random",
			Email:     "maria.oliveira@example.com",
			Phone:     "+55 11 98888-1234",
			TaxID:     "123.456.789-00",
			Type:      domain.CustomerIndividual,
			CreatedAt: createdAt,
			Address: &domain.Address{
				Street:       "Rua das Flores",
				Number:       "120",
				Neighborhood: "Centro",
				City:         "Sao Paulo",
				State:        "SP",
				ZipCode:      "01001-000",
			},
			TotalOrders: 14,
			TotalSpent:  248750,
		},
		{
			ID:          "cust-002",
			Name:        "Joao Santos",
			Avatar:      "https://ui-avatars.com/api/?name=Joao+Santos&background=random",
			Email:       "joao.santos@example.com",
			Phone:       "+55 21 97777-5678",
			TaxID:       "987.654.321-00",
			Type:        domain.CustomerIndividual,
			CreatedAt:   createdAt.AddDate(0, 1, 3),
			TotalOrders: 5,
			TotalSpent:  89900,
		},
		{
			ID:        "cust-003",
			Name:      "Moda Urbana LTDA",
			Avatar:    "https://ui-avatars.com/api/?name=Moda+Urbana&background=random",
			Email:     "compras@modaurbana.example.com",
			Phone:     "+55 11 3333-9090",
			TaxID:     "12.345.678/0001-90",
			Type:      domain.CustomerBusiness,
			CreatedAt: createdAt.AddDate(0, 2, 20),
			Address: &domain.Address{
				Street:       "Avenida Paulista",
				Number:       "1500",
				Complement:   "Conj. 804",
				Neighborhood: "Bela Vista",
				City:         "Sao Paulo",
				State:        "SP",
				ZipCode:      "01310-200",
			},
			TotalOrders: 32,
			TotalSpent:  1575000,
		},
	}
}
