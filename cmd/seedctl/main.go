package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	config "github.com/goldenreel/lobby-services/configs"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/db"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/models"
	"github.com/goldenreel/lobby-services/internal/lobbysvc/store"
	log "github.com/sirupsen/logrus"
)

type seedUser struct {
	email    string
	username string
	name     string
	password string
}

type seedGame struct {
	title       string
	provider    string
	description string
	category    models.Category
	popularity  int
	active      bool
}

var seedUsers = []seedUser{
	{"john@example.com", "johndoe", "John Doe", "password123"},
	{"sarah@example.com", "sarahsmith", "Sarah Smith", "securepass456"},
	{"mike@example.com", "mikejones", "Mike Jones", "mypassword789"},
}

var seedGames = []seedGame{
	{"Starburst Deluxe", "NetEnt", "Expanding wilds and re-spins on a cosmic jewel grid", models.CategorySlot, 95, true},
	{"Gonzo's Quest", "NetEnt", "Avalanche reels hunting the lost city of gold", models.CategorySlot, 88, true},
	{"Book of Gold", "Playtech", "Free spins with an expanding golden symbol", models.CategorySlot, 76, true},
	{"Mega Fortune Wheel", "Microgaming", "Triple-tier bonus wheel slot", models.CategorySlot, 81, true},
	{"Wolf Gold", "Pragmatic Play", "Money re-spin feature under a desert moon", models.CategorySlot, 90, true},
	{"Sweet Bonanza", "Pragmatic Play", "Tumbling candy pays with multiplier bombs", models.CategorySlot, 99, true},
	{"Dead Man's Chest", "Microgaming", "Pirate-themed slot with sticky wilds", models.CategorySlot, 64, true},
	{"Retro Reels", "Microgaming", "Classic three-reel fruit machine", models.CategorySlot, 40, false},
	{"Lightning Roulette", "Evolution Gaming", "Live roulette with randomized lucky-number multipliers", models.CategoryLive, 93, true},
	{"Crazy Time", "Evolution Gaming", "Live game show with four bonus rounds", models.CategoryLive, 97, true},
	{"Blackjack Lobby A", "Evolution Gaming", "Live dealer blackjack, seven seats", models.CategoryLive, 72, true},
	{"Baccarat Squeeze", "Evolution Gaming", "Live baccarat with the classic card squeeze", models.CategoryLive, 58, true},
	{"European Roulette Pro", "Playtech", "Single-zero roulette with racetrack bets", models.CategoryTable, 66, true},
	{"Classic Blackjack", "Playtech", "RNG blackjack with basic strategy hints", models.CategoryTable, 61, true},
	{"Casino Hold'em", "NetEnt", "Heads-up poker against the house", models.CategoryTable, 47, true},
	{"Mega Moolah", "Microgaming", "The safari slot behind record progressive jackpots", models.CategoryJackpot, 92, true},
	{"Divine Fortune", "NetEnt", "Greek mythology jackpot slot with falling wilds", models.CategoryJackpot, 78, true},
	{"Age of the Gold Gods", "Playtech", "Progressive jackpot linked across Olympus titles", models.CategoryJackpot, 70, false},
}

func init() {
	config.Logging("seedctl")
	config.LoadEnv("seedctl")
}

func main() {
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()

	if err := db.Migrate(os.Getenv("POSTGRES_URL")); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// wipe in dependency order
	for _, table := range []string{"game_sessions", "favorites", "games", "users"} {
		if _, err := dbpool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("Failed to clear %s: %v", table, err)
		}
	}

	userStore := store.NewUserStore(dbpool)
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		name := su.name
		user := &models.User{
			Email:    su.email,
			Username: su.username,
			Name:     &name,
			Password: string(hash),
		}
		if err := userStore.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to seed user %s: %v", su.username, err)
		}
	}
	log.Infof("seeded %d users", len(seedUsers))

	gameStore := store.NewGameStore(dbpool)
	for _, sg := range seedGames {
		game := &models.Game{
			Title:       sg.title,
			Provider:    sg.provider,
			Thumbnail:   "/thumbs/" + slug(sg.title) + ".png",
			Description: sg.description,
			Category:    sg.category,
			Popularity:  sg.popularity,
			IsActive:    sg.active,
		}
		if err := gameStore.CreateGame(ctx, game); err != nil {
			log.Fatalf("Failed to seed game %s: %v", sg.title, err)
		}
	}
	log.Infof("seeded %d games", len(seedGames))
}

func slug(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
