// Command seed populates a development database with sample agents,
// listings, ratings, saves and appointments, and prints bearer tokens for
// the seeded users. Ids are derived deterministically so re-running it adds
// nothing new.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/estatehub/internal/auth"
	"github.com/utafrali/estatehub/internal/config"
	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/repository/postgres"
	"github.com/utafrali/estatehub/migrations"
	"github.com/utafrali/estatehub/pkg/database"
	apperrors "github.com/utafrali/estatehub/pkg/errors"
	"github.com/utafrali/estatehub/pkg/logger"
)

var seedNamespace = uuid.MustParse("5f0c7e8a-3b1d-4c52-9a6e-2d8f4b7c1e90")

func seedID(kind string, parts ...any) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+fmt.Sprint(parts...))).String()
}

type city struct {
	name, state string
	lat, lng    float64
}

var (
	cities = []city{
		{"New York", "NY", 40.7128, -74.0060},
		{"Los Angeles", "CA", 34.0522, -118.2437},
		{"Chicago", "IL", 41.8781, -87.6298},
		{"Houston", "TX", 29.7604, -95.3698},
		{"Phoenix", "AZ", 33.4484, -112.0740},
		{"Philadelphia", "PA", 39.9526, -75.1652},
		{"San Antonio", "TX", 29.4241, -98.4936},
		{"San Diego", "CA", 32.7157, -117.1611},
		{"Dallas", "TX", 32.7767, -96.7970},
		{"San Francisco", "CA", 37.7749, -122.4194},
	}
	propertyTypes = []string{"House", "Apartment", "Condo", "Townhouse"}
	statuses      = domain.ValidStatuses()
	streets       = []string{"Main", "Oak", "Maple", "Cedar", "Pine", "Elm"}
	suffixes      = []string{"St", "Ave", "Blvd", "Dr", "Ln"}
	adjectives    = []string{"Beautiful", "Charming", "Stunning", "Luxurious", "Modern", "Spacious", "Elegant", "Cozy"}
	features      = []string{"Renovated", "Updated", "Designer", "Custom", "Open-Concept"}
	descriptions  = []string{
		"Modern amenities, an open floor plan and plenty of natural light. The kitchen has stainless steel appliances and a covered patio opens onto mature landscaping.",
		"Character and modern updates in a sought-after neighborhood. Fireplace, hardwood floors and a kitchen with quartz countertops.",
		"Contemporary finishes throughout. Gourmet kitchen with a large island; the primary suite has a spa-like bathroom and walk-in closet.",
		"Room for everyone in an excellent school district, with a deck, a play area and mature trees for privacy.",
		"Timeless design with a formal dining room, a casual family room and a primary bedroom with a sitting area.",
	}
	images = []string{
		"https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800&auto=format&fit=crop",
		"https://images.unsplash.com/photo-1576941089067-2de3c901e126?w=800&auto=format&fit=crop",
		"https://images.unsplash.com/photo-1582268611958-ebfd161ef9cf?w=800&auto=format&fit=crop",
		"https://images.unsplash.com/photo-1580587771525-78b9dba3b914?w=800&auto=format&fit=crop",
		"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800&auto=format&fit=crop",
		"https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800&auto=format&fit=crop",
	}
	agents = []domain.Agent{
		{Name: "John Smith", Specialization: "Luxury Homes", Rating: 4.8, PropertiesSold: 142, ImageURL: "https://images.unsplash.com/photo-1560250097-0b93528c311a?w=400&auto=format&fit=crop"},
		{Name: "Sarah Johnson", Specialization: "First-Time Buyers", Rating: 4.9, PropertiesSold: 98, ImageURL: "https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?w=400&auto=format&fit=crop"},
		{Name: "Michael Chen", Specialization: "Commercial Properties", Rating: 4.7, PropertiesSold: 203, ImageURL: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&auto=format&fit=crop"},
		{Name: "Aisha Patel", Specialization: "Urban Apartments", Rating: 4.6, PropertiesSold: 87, ImageURL: "https://images.unsplash.com/photo-1580489944761-15a19d654956?w=400&auto=format&fit=crop"},
		{Name: "Robert Williams", Specialization: "Suburban Homes", Rating: 4.5, PropertiesSold: 176, ImageURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&auto=format&fit=crop"},
	}
)

func main() {
	users := flag.String("users", "user_123456789,user_987654321", "comma-separated user ids that own and interact with listings")
	perUser := flag.Int("per-user", 15, "listings created per user")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed dev tokens")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New(config.ServiceName+"-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, strings.Split(*users, ","), *perUser, *tokenTTL, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, users []string, perUser int, tokenTTL time.Duration, log *slog.Logger) error {
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return err
	}

	agentRepo := postgres.NewAgentRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	ratingRepo := postgres.NewRatingRepository(pool)
	savedRepo := postgres.NewSavedPropertyRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)

	for i := range agents {
		a := agents[i]
		a.ID = seedID("agent", a.Name)
		if err := agentRepo.Insert(ctx, &a); err != nil {
			return err
		}
	}
	log.Info("agents seeded", slog.Int("count", len(agents)))

	rng := rand.New(rand.NewPCG(42, 1024))
	now := time.Now().UTC()
	var created, ratings, saves, appts int

	for u, owner := range users {
		for j := range perUser {
			p := generateProperty(rng, owner, j, now)
			p.ID = seedID("property", owner, j)

			_, err := propertyRepo.GetByID(ctx, p.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			if err := propertyRepo.Create(ctx, p); err != nil {
				return err
			}
			created++

			// Only other users interact with a listing.
			other := users[(u+1)%len(users)]
			if other == owner {
				continue
			}
			if rng.Float64() < 0.7 {
				r := &domain.Rating{ID: seedID("rating", p.ID, other), PropertyID: p.ID, UserID: other, Rating: 3 + rng.IntN(3), CreatedAt: now}
				if err := ratingRepo.Upsert(ctx, r); err != nil {
					return err
				}
				ratings++
			}
			if rng.Float64() < 0.3 {
				s := &domain.SavedProperty{ID: seedID("saved", p.ID, other), PropertyID: p.ID, UserID: other, CreatedAt: now}
				if err := savedRepo.Save(ctx, s); err != nil {
					return err
				}
				saves++
			}
			if rng.Float64() < 0.2 {
				day := now.AddDate(0, 0, 1+rng.IntN(14))
				a := &domain.Appointment{
					ID:         seedID("appointment", p.ID, other),
					PropertyID: p.ID,
					UserID:     other,
					Date:       time.Date(day.Year(), day.Month(), day.Day(), 9+rng.IntN(9), 30*rng.IntN(2), 0, 0, time.UTC),
					Message:    "I'm interested in viewing this property. Please let me know if this time works for you.",
					Status:     domain.AppointmentStatusPending,
					CreatedAt:  now,
				}
				if err := appointmentRepo.Create(ctx, a); err != nil {
					return err
				}
				appts++
			}
		}
	}
	log.Info("listings seeded",
		slog.Int("properties", created),
		slog.Int("ratings", ratings),
		slog.Int("saved", saves),
		slog.Int("appointments", appts),
	)

	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	for _, u := range users {
		token, err := verifier.Issue(u, "", tokenTTL)
		if err != nil {
			return err
		}
		fmt.Printf("%s\tBearer %s\n", u, token)
	}
	return nil
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}

func generateProperty(rng *rand.Rand, owner string, index int, now time.Time) *domain.Property {
	c := pick(rng, cities)
	propertyType := pick(rng, propertyTypes)
	listingType := pick(rng, domain.ValidListingTypes())
	bedrooms := 1 + rng.IntN(5)
	sqft := 800 + rng.IntN(2701)
	year := 1950 + rng.IntN(73)

	return &domain.Property{
		Title:        fmt.Sprintf("%s %d-Bedroom %s %s in %s", pick(rng, adjectives), bedrooms, pick(rng, features), propertyType, c.name),
		Description:  pick(rng, descriptions),
		Price:        generatePrice(rng, propertyType, listingType, sqft),
		Address:      fmt.Sprintf("%d %s %s", 100+rng.IntN(9900), pick(rng, streets), pick(rng, suffixes)),
		City:         c.name,
		State:        c.state,
		ZipCode:      fmt.Sprintf("%05d", 10000+rng.IntN(90000)),
		Lat:          c.lat + (rng.Float64()-0.5)*0.05,
		Lng:          c.lng + (rng.Float64()-0.5)*0.05,
		Bedrooms:     bedrooms,
		Bathrooms:    float64(1 + rng.IntN(bedrooms+1)),
		SquareFeet:   sqft,
		YearBuilt:    &year,
		PropertyType: propertyType,
		ListingType:  listingType,
		ImageURL:     pick(rng, images),
		UserID:       owner,
		Featured:     index%10 == 0,
		Status:       pick(rng, statuses),
		CreatedAt:    now.AddDate(0, 0, -rng.IntN(91)),
	}
}

// generatePrice prices by square foot; rent is a monthly figure.
func generatePrice(rng *rand.Rand, propertyType, listingType string, sqft int) float64 {
	var perSqft int
	switch propertyType {
	case "House":
		perSqft = 200 + rng.IntN(201)
	case "Condo":
		perSqft = 250 + rng.IntN(201)
	case "Townhouse":
		perSqft = 180 + rng.IntN(171)
	default:
		perSqft = 150 + rng.IntN(151)
	}
	price := float64(perSqft * sqft)

	if listingType == domain.ListingTypeRent {
		price = price * float64(5+rng.IntN(4)) / 1000
		price = min(max(price, 1000), 10000)
		return float64(int(price/100+0.5) * 100)
	}
	price = min(max(price, 100000), 2500000)
	return float64(int(price/1000+0.5) * 1000)
}
