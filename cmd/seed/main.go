// Command seed fills the database with sample categories, venues, events and posts.
// Every row is written through the services, so the sample data passes the same
// sanitization and validation as any other write.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	_ "github.com/lib/pq"

	"eventlist/config"
	"eventlist/internal/clock"
	"eventlist/internal/domain"
	"eventlist/internal/repository/postgres"
	"eventlist/internal/sanitize"
	"eventlist/internal/services"
	"eventlist/migrations"
)

type seedEvent struct {
	title, description, category, venue string
	daysFromNow, durationHours          int
}

var categoriesData = []struct{ name, description string }{
	{"Music", "Live music performances, concerts, and musical events featuring local and touring artists across all genres."},
	{"Food & Drink", "Food festivals, wine tastings, brewery events, and culinary experiences showcasing Pacific Northwest flavors."},
	{"Outdoor", "Hiking, camping, outdoor adventures, and nature-based activities taking advantage of our beautiful landscape."},
	{"Art & Culture", "Art exhibitions, cultural festivals, theater performances, and creative community gatherings."},
	{"Sports", "Professional sports, recreational leagues, tournaments, and athletic events for all skill levels."},
	{"Community", "Neighborhood gatherings, volunteer opportunities, and events that bring our community together."},
}

var venuesData = []struct {
	name, address string
	capacity      int
}{
	{"The Crocodile", "2200 2nd Ave, Seattle, WA 98121", 400},
	{"Fremont Brewing", "1050 N 34th St, Seattle, WA 98103", 150},
	{"Woodland Park Zoo", "5500 Phinney Ave N, Seattle, WA 98103", 300},
	{"Gas Works Park", "2101 N Northlake Way, Seattle, WA 98103", 800},
	{"Belltown Community Center", "415 Bell St, Seattle, WA 98121", 100},
}

var eventsData = []seedEvent{
	{"Jazz in the Park", "Monthly jazz series featuring both emerging and established musicians from the Seattle jazz scene. Bring a blanket and enjoy smooth sounds in a beautiful outdoor setting.", "Music", "Gas Works Park", 8, 3},
	{"Electronic Music Showcase", "Late night electronic music event featuring DJs and live electronic artists. Dance the night away to beats and bass in an intimate venue setting.", "Music", "The Crocodile", 22, 5},
	{"Pacific Northwest Food Festival", "Taste the best of local cuisine featuring salmon, craft beer, artisanal cheeses, and farm-to-table restaurants. Learn about sustainable food practices and meet local producers.", "Food & Drink", "Gas Works Park", 12, 8},
	{"Craft Beer Tasting", "Sample a wide variety of Pacific Northwest craft beers while learning about brewing techniques from local masters. Includes food pairings and brewery tours.", "Food & Drink", "Fremont Brewing", 5, 4},
	{"Farm to Table Dinner", "Multi-course dinner featuring ingredients sourced from local farms and producers. Each dish paired with local wines and served in a community garden setting.", "Food & Drink", "Woodland Park Zoo", 18, 3},
	{"Guided Nature Hike", "Explore local trails with an experienced naturalist guide. Learn about Pacific Northwest flora and fauna while enjoying moderate hiking through beautiful forest landscapes.", "Outdoor", "Woodland Park Zoo", 3, 4},
	{"Outdoor Yoga Session", "Start your weekend with yoga in the park. All skill levels welcome. Bring your own mat and water. Sessions focus on connecting with nature and finding inner peace.", "Outdoor", "Gas Works Park", 2, 2},
	{"Urban Foraging Workshop", "Learn to identify and safely harvest edible plants in urban environments. Includes a guided walk and cooking demonstration using foraged ingredients.", "Outdoor", "Woodland Park Zoo", 25, 5},
	{"Local Artists Gallery Opening", "Celebrate emerging Pacific Northwest artists with an evening of art, wine, and conversation. Features paintings, sculptures, and mixed media from 15 local creators.", "Art & Culture", "Belltown Community Center", 7, 4},
	{"Community Theater Performance", "Original play written and performed by community members, exploring themes of family, nature, and belonging in the Pacific Northwest.", "Art & Culture", "Belltown Community Center", 14, 3},
	{"Poetry and Coffee Evening", "Open mic poetry night featuring local poets and writers. Enjoy artisan coffee and pastries while listening to original works and slam poetry performances.", "Art & Culture", "Fremont Brewing", 6, 3},
	{"Community Soccer Tournament", "Annual neighborhood soccer tournament open to all ages and skill levels. Teams compete in a friendly atmosphere with prizes for sportsmanship and community spirit.", "Sports", "Gas Works Park", 20, 8},
	{"Charity Fun Run", "5K and 10K runs through scenic park trails to benefit local environmental organizations. Registration includes t-shirt, post-race refreshments, and raffle entry.", "Sports", "Gas Works Park", 11, 4},
	{"Community Potluck and Game Night", "Monthly gathering bringing neighbors together for food, games, and conversation. Bring a dish to share and enjoy board games, card games, and community connection.", "Community", "Belltown Community Center", 9, 4},
	{"Skill Share Workshop", "Community members teach each other practical skills like gardening, bike repair, cooking, and crafts. Free workshop with materials provided and lunch included.", "Community", "Belltown Community Center", 16, 6},
	// Past events for exercising the date filters. Writes reject starts older than 30 days.
	{"Summer Music Festival", "Three-day music festival featuring over 50 artists across multiple stages. Food vendors, art installations, and family-friendly activities.", "Music", "Gas Works Park", -20, 12},
	{"Harvest Festival", "Celebration of fall harvest with local farmers, pumpkin carving, apple cider, and traditional Pacific Northwest foods.", "Food & Drink", "Gas Works Park", -28, 8},
}

var postTemplates = []string{
	"Don't miss this amazing event! Limited spots available.",
	"Early bird tickets now available with special pricing.",
	"This event has been updated with new performers and activities.",
	"Weather looks great for this outdoor event!",
	"Thanks to our community sponsors who make this event possible.",
	"Volunteers needed! Contact us if you'd like to help.",
	"Parking information and transit options now posted.",
	"Check out photos from last year's event on our website.",
}

const postedEvents = 8

type seeder struct {
	logger     *slog.Logger
	categories domain.CategoryService
	venues     domain.VenueService
	events     domain.EventService
	posts      domain.EventPostService
	now        time.Time
}

func main() {
	clearFirst := flag.Bool("clear", true, "delete existing categories and venues (and with them every event and post) first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger(cfg)
	if err := run(context.Background(), cfg, logger, *clearFirst); err != nil {
		logger.Error("seed failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, clearFirst bool) error {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := migrations.Apply(ctx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// One instant for the whole run so relative start dates validate consistently.
	now := time.Now().UTC()
	clk := clock.NewFixed(now)
	sanitizer := sanitize.New()
	categoryRepo := postgres.NewCategoryRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	s := &seeder{
		logger:     logger,
		categories: services.NewCategoryService(categoryRepo, sanitizer, cfg.RequestTimeout),
		venues:     services.NewVenueService(venueRepo, sanitizer, cfg.RequestTimeout),
		events:     services.NewEventService(eventRepo, categoryRepo, venueRepo, sanitizer, clk, cfg.RequestTimeout),
		posts:      services.NewEventPostService(postgres.NewEventPostRepository(db), eventRepo, sanitizer, cfg.RequestTimeout),
		now:        now,
	}
	if clearFirst {
		if err := s.clear(ctx); err != nil {
			return err
		}
	}
	return s.seed(ctx)
}

// clear deletes every venue and category. The schema cascades to events and posts.
func (s *seeder) clear(ctx context.Context) error {
	venues, err := s.venues.ListVenues(ctx)
	if err != nil {
		return err
	}
	for _, v := range venues {
		if err := s.venues.DeleteVenue(ctx, v.ID); err != nil {
			return fmt.Errorf("delete venue %s: %w", v, err)
		}
	}
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if err := s.categories.DeleteCategory(ctx, c.ID); err != nil {
			return fmt.Errorf("delete category %s: %w", c, err)
		}
	}
	s.logger.Info("cleared existing data", "venues", len(venues), "categories", len(categories))
	return nil
}

func (s *seeder) seed(ctx context.Context) error {
	categories := make(map[string]*domain.Category, len(categoriesData))
	for _, d := range categoriesData {
		c := domain.NewCategory(d.name, d.description)
		if err := s.categories.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("create category %q: %w", d.name, err)
		}
		categories[d.name] = c
		s.logger.Info("created category", "name", c.String())
	}

	venues := make(map[string]*domain.Venue, len(venuesData))
	for _, d := range venuesData {
		capacity := d.capacity
		v := domain.NewVenue(d.name, d.address, &capacity)
		if err := s.venues.CreateVenue(ctx, v); err != nil {
			return fmt.Errorf("create venue %q: %w", d.name, err)
		}
		venues[d.name] = v
		s.logger.Info("created venue", "name", v.String())
	}

	events := make([]*domain.Event, 0, len(eventsData))
	for _, d := range eventsData {
		venue := venues[d.venue]
		start := s.now.AddDate(0, 0, d.daysFromNow)
		end := start.Add(time.Duration(d.durationHours) * time.Hour)
		location := venue.Name + ", " + venue.Address
		e := domain.NewEvent(d.title, d.description, location, start, end, &categories[d.category].ID, venue.ID)
		if err := s.events.CreateEvent(ctx, e); err != nil {
			return fmt.Errorf("create event %q: %w", d.title, err)
		}
		events = append(events, e)
		s.logger.Info("created event", "title", e.String())
	}

	for _, i := range rand.Perm(len(events))[:postedEvents] {
		e := events[i]
		p := domain.NewEventPost(e.ID, postTemplates[rand.IntN(len(postTemplates))])
		if err := s.posts.CreatePost(ctx, p); err != nil {
			return fmt.Errorf("create post for %q: %w", e.Title, err)
		}
		s.logger.Info("created post", "post", p.String(), "event", e.String())
	}

	s.logger.Info("seed complete",
		"categories", len(categories),
		"venues", len(venues),
		"events", len(events),
		"posts", postedEvents,
	)
	return nil
}
