// Package app assembles the lead services and the HTTP router from config.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/bookcall"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/cache"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/config"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/consultancy"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/developer"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/marketer"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/newsletter"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/partner"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/resume"
	"github.com/cohortlab/cohortlab/backend/go-services/internal/storage"
)

type Services struct {
	Newsletter  *newsletter.Service
	Developer   *developer.Service
	Marketer    *marketer.Service
	Partner     *partner.Service
	Consultancy *consultancy.Service
	BookCall    *bookcall.Service
}

// Repos groups one repository per resource.
type Repos struct {
	Newsletter  newsletter.Repository
	Developer   developer.Repository
	Marketer    marketer.Repository
	Partner     partner.Repository
	Consultancy consultancy.Repository
	BookCall    bookcall.Repository
}

// MongoRepos binds every resource to its collection in db.
func MongoRepos(db *mongo.Database) Repos {
	return Repos{
		Newsletter:  newsletter.NewMongoRepo(db.Collection(newsletter.Collection)),
		Developer:   developer.NewMongoRepo(db.Collection(developer.Collection)),
		Marketer:    marketer.NewMongoRepo(db.Collection(marketer.Collection)),
		Partner:     partner.NewMongoRepo(db.Collection(partner.Collection)),
		Consultancy: consultancy.NewMongoRepo(db.Collection(consultancy.Collection)),
		BookCall:    bookcall.NewMongoRepo(db.Collection(bookcall.Collection)),
	}
}

// MemoryRepos keeps everything in process; data is lost on restart.
func MemoryRepos() Repos {
	return Repos{
		Newsletter:  newsletter.NewMemoryRepo(),
		Developer:   developer.NewMemoryRepo(),
		Marketer:    marketer.NewMemoryRepo(),
		Partner:     partner.NewMemoryRepo(),
		Consultancy: consultancy.NewMemoryRepo(),
		BookCall:    bookcall.NewMemoryRepo(),
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every Mongo-backed repository in r.
func (r Repos) EnsureIndexes(ctx context.Context) error {
	named := []struct {
		name string
		repo interface{}
	}{
		{newsletter.Collection, r.Newsletter},
		{developer.Collection, r.Developer},
		{marketer.Collection, r.Marketer},
		{partner.Collection, r.Partner},
		{consultancy.Collection, r.Consultancy},
		{bookcall.Collection, r.BookCall},
	}
	for _, n := range named {
		ix, ok := n.repo.(indexer)
		if !ok {
			continue
		}
		if err := ix.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", n.name, err)
		}
	}
	return nil
}

// NewServices wires the domain services. rdb may be nil, which disables the stats cache.
func NewServices(cfg *config.Config, repos Repos, store storage.Store, rdb *redis.Client) Services {
	var stats newsletter.StatsCache
	if rdb != nil {
		stats = cache.NewJSONCache[newsletter.Stats](rdb, "cache:stats:", cfg.Cache.StatsTTL)
	}
	maxBytes := cfg.Storage.MaxResumeBytes
	return Services{
		Newsletter:  newsletter.NewService(repos.Newsletter, stats),
		Developer:   developer.NewService(repos.Developer, resume.NewManager(store, "developer", maxBytes)),
		Marketer:    marketer.NewService(repos.Marketer, resume.NewManager(store, "marketer", maxBytes)),
		Partner:     partner.NewService(repos.Partner),
		Consultancy: consultancy.NewService(repos.Consultancy),
		BookCall:    bookcall.NewService(repos.BookCall),
	}
}
