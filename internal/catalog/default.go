package catalog

import "github.com/sabores-de-africa/sabores/internal/models"

// defaultRecipes is the catalog the application ships with.
func defaultRecipes() []models.RecipeSummary {
	return []models.RecipeSummary{
		{
			ID:          "1",
			Name:        "Jollof Rice",
			Origin:      "Nigéria/Gana",
			Description: "Um prato de arroz aromático cozido num molho de tomate rico e picante.",
			ImageURL:    "https://picsum.photos/seed/jollof/800/600",
			Category:    models.CategoryWest,
			Premium:     false,
		},
		{
			ID:          "2",
			Name:        "Muamba de Galinha",
			Origin:      "Angola",
			Description: "Galinha cozida em molho de dendém com quiabos e abóbora.",
			ImageURL:    "https://picsum.photos/seed/muamba/800/600",
			Category:    models.CategoryCentral,
			Premium:     true,
			Price:       4.99,
		},
		{
			ID:          "3",
			Name:        "Injera com Doro Wat",
			Origin:      "Etiópia",
			Description: "Pão fermentado esponjoso servido com um guisado picante de frango e ovos.",
			ImageURL:    "https://picsum.photos/seed/injera/800/600",
			Category:    models.CategoryEast,
			Premium:     true,
			Price:       5.50,
		},
		{
			ID:          "4",
			Name:        "Bunny Chow",
			Origin:      "África do Sul",
			Description: "Pão oco recheado com caril aromático e picante.",
			ImageURL:    "https://picsum.photos/seed/bunnychow/800/600",
			Category:    models.CategorySouthern,
			Premium:     false,
		},
		{
			ID:          "5",
			Name:        "Tagine de Cordeiro",
			Origin:      "Marrocos",
			Description: "Guisado cozido lentamente com frutos secos e especiarias exóticas.",
			ImageURL:    "https://picsum.photos/seed/tagine/800/600",
			Category:    models.CategoryNorth,
			Premium:     true,
			Price:       6.99,
		},
		{
			ID:          "6",
			Name:        "Cachupa Rica",
			Origin:      "Cabo Verde",
			Description: "Guisado robusto de milho, feijão e diversas carnes.",
			ImageURL:    "https://picsum.photos/seed/cachupa/800/600",
			Category:    models.CategoryWest,
			Premium:     false,
		},
	}
}
