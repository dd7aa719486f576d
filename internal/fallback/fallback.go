// Package fallback holds the placeholder data served when the football
// backend cannot be reached.
package fallback

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// Notice is shown alongside pages built from placeholder data
const Notice = "Não foi possível carregar os dados. Exibindo dados de exemplo."

var published = time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

// UpcomingMatches returns the placeholder fixture list
func UpcomingMatches() []models.Match {
	return []models.Match{{
		ID:          1,
		HomeTeam:    "Flamengo",
		AwayTeam:    "Palmeiras",
		Competition: "Brasileirão",
		MatchDate:   "2025-11-15",
		MatchTime:   "19:00:00",
		Status:      "scheduled",
	}}
}

// Ranking returns the placeholder leaderboard
func Ranking() []models.UserStats {
	return []models.UserStats{{
		ID:                 1,
		Position:           1,
		UserName:           "João Silva",
		UserEmail:          "joao@example.com",
		TotalPredictions:   60,
		CorrectPredictions: 45,
		TotalPoints:        450,
		Accuracy:           75,
	}}
}

// Categories returns the placeholder categories
func Categories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Análise Tática", Slug: "analise-tatica", Description: "Estudos de sistemas e padrões de jogo", Color: "#10B981", CreatedAt: published, UpdatedAt: published},
		{ID: 2, Name: "Scout", Slug: "scout", Description: "Avaliação de jogadores", Color: "#3B82F6", CreatedAt: published, UpdatedAt: published},
		{ID: 3, Name: "Estatísticas", Slug: "estatisticas", Description: "Números e métricas do campeonato", Color: "#F59E0B", CreatedAt: published, UpdatedAt: published},
	}
}

// Tags returns the placeholder tags
func Tags() []models.Tag {
	return []models.Tag{
		{ID: 1, Name: "Brasileirão", Slug: "brasileirao", CreatedAt: published},
		{ID: 2, Name: "Tática", Slug: "tatica", CreatedAt: published},
		{ID: 3, Name: "Dados", Slug: "dados", CreatedAt: published},
	}
}

// PostDetail returns the placeholder post with the given slug
func PostDetail(slug string) (models.PostDetail, bool) {
	for _, p := range Posts() {
		if p.Slug == slug {
			return models.PostDetail{
				Post:            p,
				Content:         p.Excerpt,
				MetaDescription: p.Excerpt,
				Comments:        []models.Comment{},
			}, true
		}
	}
	return models.PostDetail{}, false
}

// Posts returns the placeholder post list
func Posts() []models.Post {
	cats := Categories()
	return []models.Post{
		{
			ID: 1, Title: "Como o 4-3-3 domina o Brasileirão", Slug: "como-o-4-3-3-domina-o-brasileirao",
			Excerpt: "Uma análise das equipes que apostam em pontas abertas.", Author: "Redação",
			Category: &cats[0], Status: "published", ReadTime: 6, Views: 1200, Likes: 85,
			CreatedAt: published, UpdatedAt: published, PublishedAt: &published, Tags: []models.PostTag{},
		},
		{
			ID: 2, Title: "Os laterais mais completos da temporada", Slug: "os-laterais-mais-completos-da-temporada",
			Excerpt: "Velocidade, cruzamento e desarme em números.", Author: "Redação",
			Category: &cats[1], Status: "published", ReadTime: 4, Views: 860, Likes: 42,
			CreatedAt: published, UpdatedAt: published, PublishedAt: &published, Tags: []models.PostTag{},
		},
		{
			ID: 3, Title: "Expected goals: quem finaliza melhor?", Slug: "expected-goals-quem-finaliza-melhor",
			Excerpt: "Comparando gols marcados com a qualidade das chances.", Author: "Redação",
			Category: &cats[2], Status: "published", ReadTime: 5, Views: 640, Likes: 30,
			CreatedAt: published, UpdatedAt: published, PublishedAt: &published, Tags: []models.PostTag{},
		},
	}
}

// Teams returns the Brasileirão clubs
func Teams() []models.Team {
	return []models.Team{
		{ID: 1, Name: "Athletico Paranaense", Slug: "athletico-paranaense", ShortName: "CAP", LogoURL: "/teams/atletico_mineiro.png", PrimaryColor: "#E30613", SecondaryColor: "#000000"},
		{ID: 2, Name: "Atlético Mineiro", Slug: "atletico-mineiro", ShortName: "CAM", LogoURL: "/teams/atletico_mineiro.png", PrimaryColor: "#000000", SecondaryColor: "#FFFFFF"},
		{ID: 3, Name: "Bahia", Slug: "bahia", ShortName: "BAH", LogoURL: "/teams/bahia.png", PrimaryColor: "#0047AB", SecondaryColor: "#E30613"},
		{ID: 4, Name: "Botafogo", Slug: "botafogo", ShortName: "BOT", LogoURL: "/teams/botafogo.png", PrimaryColor: "#000000", SecondaryColor: "#FFFFFF"},
		{ID: 5, Name: "Ceará", Slug: "ceara", ShortName: "CEA", LogoURL: "/teams/mirassol.png", PrimaryColor: "#000000", SecondaryColor: "#FFFFFF"},
		{ID: 6, Name: "Corinthians", Slug: "corinthians", ShortName: "COR", LogoURL: "/teams/corinthians.png", PrimaryColor: "#000000", SecondaryColor: "#FFFFFF"},
		{ID: 7, Name: "Coritiba", Slug: "coritiba", ShortName: "CFC", LogoURL: "/teams/mirassol.png", PrimaryColor: "#00643C", SecondaryColor: "#FFFFFF"},
		{ID: 8, Name: "Cruzeiro", Slug: "cruzeiro", ShortName: "CRU", LogoURL: "/teams/cruzeiro.png", PrimaryColor: "#003399", SecondaryColor: "#FFFFFF"},
		{ID: 9, Name: "Cuiabá", Slug: "cuiaba", ShortName: "CUI", LogoURL: "/teams/mirassol.png", PrimaryColor: "#FFCC00", SecondaryColor: "#006400"},
		{ID: 10, Name: "Flamengo", Slug: "flamengo", ShortName: "FLA", LogoURL: "/teams/flamengo.png", PrimaryColor: "#E30613", SecondaryColor: "#000000"},
		{ID: 11, Name: "Fluminense", Slug: "fluminense", ShortName: "FLU", LogoURL: "/teams/fluminense.png", PrimaryColor: "#7F1E3C", SecondaryColor: "#006400"},
		{ID: 12, Name: "Fortaleza", Slug: "fortaleza", ShortName: "FOR", LogoURL: "/teams/fortaleza.png", PrimaryColor: "#003399", SecondaryColor: "#E30613"},
		{ID: 13, Name: "Grêmio", Slug: "gremio", ShortName: "GRE", LogoURL: "/teams/gremio.png", PrimaryColor: "#0088CC", SecondaryColor: "#000000"},
		{ID: 14, Name: "Internacional", Slug: "internacional", ShortName: "INT", LogoURL: "/teams/internacional.png", PrimaryColor: "#E30613", SecondaryColor: "#FFFFFF"},
		{ID: 15, Name: "Palmeiras", Slug: "palmeiras", ShortName: "PAL", LogoURL: "/teams/palmeiras.png", PrimaryColor: "#006400", SecondaryColor: "#FFFFFF"},
		{ID: 16, Name: "Red Bull Bragantino", Slug: "red-bull-bragantino", ShortName: "RBB", LogoURL: "/teams/rb-bragantino.png", PrimaryColor: "#FFCC00", SecondaryColor: "#E30613"},
		{ID: 17, Name: "Santos", Slug: "santos", ShortName: "SAN", LogoURL: "/teams/santos.png", PrimaryColor: "#FFFFFF", SecondaryColor: "#000000"},
		{ID: 18, Name: "São Paulo", Slug: "sao-paulo", ShortName: "SAO", LogoURL: "/teams/sao_paulo.png", PrimaryColor: "#E30613", SecondaryColor: "#000000"},
		{ID: 19, Name: "Vasco", Slug: "vasco", ShortName: "VAS", LogoURL: "/teams/vasco-da-gama.png", PrimaryColor: "#000000", SecondaryColor: "#FFFFFF"},
		{ID: 20, Name: "Vitória", Slug: "vitoria", ShortName: "VIT", LogoURL: "/teams/vitoria.png", PrimaryColor: "#E30613", SecondaryColor: "#000000"},
	}
}

// Profile returns the placeholder predictor profile for email
func Profile(email string) models.UserProfile {
	correct, wrong := true, false
	return models.UserProfile{
		Name:               "Usuário Exemplo",
		Email:              email,
		TotalPredictions:   42,
		CorrectPredictions: 28,
		Accuracy:           66.7,
		TotalPoints:        280,
		Position:           5,
		JoinDate:           "2025-01-01",
		History: []models.HistoryEntry{
			{ID: 1, Match: "Flamengo vs Palmeiras", Prediction: models.OutcomeHome, Result: models.OutcomeHome, Correct: &correct, Points: 10, Date: "2025-11-10"},
			{ID: 2, Match: "São Paulo vs Corinthians", Prediction: models.OutcomeAway, Result: models.OutcomeDraw, Correct: &wrong, Points: 0, Date: "2025-11-08"},
			{ID: 3, Match: "Botafogo vs Vasco", Prediction: models.OutcomeHome, Result: models.OutcomeHome, Correct: &correct, Points: 10, Date: "2025-11-05"},
		},
		Fallback: true,
	}
}
