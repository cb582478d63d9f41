package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"recruitai/internal/config"
	"recruitai/internal/database"
	"recruitai/internal/database/migration"
	dbpostgres "recruitai/internal/database/postgres"
	dbsqlite "recruitai/internal/database/sqlite"
	"recruitai/internal/domain/user"
	"recruitai/internal/formlink"
	"recruitai/internal/infrastructure/cache"
	"recruitai/internal/infrastructure/jotform"
	"recruitai/internal/infrastructure/persistence/memory"
	"recruitai/internal/infrastructure/persistence/sqldb"
	"recruitai/internal/infrastructure/ratelimit"
	"recruitai/internal/jobstore"
	"recruitai/internal/pkg/jwt"
	"recruitai/internal/seeder"
	"recruitai/internal/usecase"
	"recruitai/internal/usecase/submission"
	"recruitai/internal/ws"
)

const sharedCooldownKey = "jotform:cooldown"

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Redis *cache.Redis
	Store cache.Store
	Users user.Repository

	JotForm  *jotform.Client
	Jobs     *jobstore.Registry
	Links    *formlink.Builder
	Hub      *ws.Hub
	Notifier *ws.Notifier
	JWT      *jwt.HMACService

	Auth         *usecase.Auth
	Profiles     *usecase.Profiles
	JobUC        *usecase.Jobs
	Applications *usecase.Applications
	Analytics    *usecase.Analytics
	Refresh      *submission.RefreshService

	closers []func() error
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags|log.LUTC)
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStore(); err != nil {
		return nil, err
	}
	if err := c.initUsers(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.initJotForm(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Jobs = jobstore.New()
	c.Links = formlink.NewBuilder(cfg.Forms, c.JotForm.DefaultFormID())
	c.Hub = ws.NewHub(logger)
	c.Notifier = ws.NewNotifier(c.Hub)
	c.Jobs.AddListener(func() { c.Notifier.JobsUpdated(c.Jobs.Len()) })

	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
	c.Auth = usecase.NewAuthUsecase(c.Users, c.JWT, c.Store, logger)
	c.Profiles = usecase.NewProfileUsecase(c.Users)
	c.JobUC = usecase.NewJobUsecase(c.Jobs, c.Links, logger)
	c.Applications = usecase.NewApplicationUsecase(c.JotForm, c.Jobs, logger)
	c.Analytics = usecase.NewAnalyticsUsecase(c.JotForm, c.Jobs, c.Applications, time.Now, logger)
	c.Refresh = submission.NewRefreshService(c.JotForm, c.Store, logger, 0)

	if cfg.App.SeedDemoJobs {
		r := seeder.Runner{Seeders: []seeder.Seeder{
			seeder.JobSeeder{Jobs: c.Jobs, Company: cfg.Forms.CompanyName, Logger: logger},
		}}
		if err := r.Run(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	return c, nil
}

// initStore picks Redis when enabled and reachable, otherwise an
// in-process store.
func (c *Container) initStore() error {
	if c.Config.Redis.Enabled {
		r := cache.NewRedis(c.Config.Redis, c.Logger)
		if r.Available() {
			c.Redis = r
			c.Store = r
			c.closers = append(c.closers, r.Close)
			return nil
		}
		c.Logger.Printf("[App] redis unreachable, using in-memory store")
	}
	c.Store = cache.NewMemory(nil)
	return nil
}

func (c *Container) initUsers(ctx context.Context) error {
	dbCfg := c.Config.Database
	if !dbCfg.Enabled() {
		c.Logger.Printf("[App] no database configured, accounts are kept in memory")
		c.Users = memory.NewUserRepository(nil)
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var (
		db  database.DB
		err error
	)
	switch dbCfg.Driver {
	case config.DriverSQLite:
		db, err = dbsqlite.Open(connectCtx, dbCfg.SQLitePath)
	default:
		db, err = dbpostgres.Connect(connectCtx, dbCfg)
	}
	if err != nil {
		return fmt.Errorf("connect %s: %w", dbCfg.Driver, err)
	}
	c.DB = db
	c.closers = append(c.closers, db.Close)

	if _, err := migration.NewRunner(dbCfg.MigrationsDir, c.Logger).Run(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	repo, err := sqldb.NewUserRepository(ctx, db)
	if err != nil {
		return err
	}
	// Statements must close before the pool.
	c.closers = append(c.closers, repo.Close)
	c.Users = repo
	return nil
}

func (c *Container) initJotForm() error {
	jc := c.Config.JotForm

	probes := jotform.DefaultProbes()
	if jc.ProbesFile != "" {
		p, err := jotform.LoadProbes(jc.ProbesFile)
		if err != nil {
			return fmt.Errorf("load probes: %w", err)
		}
		probes = p
	}

	var cooldown ratelimit.Cooldown = ratelimit.NewMemoryCooldown(nil)
	if c.Redis != nil && c.Config.Redis.SharedCooldown {
		cooldown = ratelimit.NewSharedCooldown(c.Redis, sharedCooldownKey, nil, c.Logger)
	}

	c.JotForm = jotform.New(jotform.Config{
		BaseURL:        jc.BaseURL,
		APIKey:         jc.APIKey,
		DefaultFormID:  jc.FormID,
		PageSize:       jc.PageSize,
		Spacing:        jc.Spacing,
		CooldownPeriod: jc.CooldownPeriod,
		StatusSync:     jc.StatusSync,
	},
		jotform.WithCache(cache.NewSubmissionCache(c.Store, jc.CacheTTL, nil, c.Logger)),
		jotform.WithCooldown(cooldown),
		jotform.WithSpacer(ratelimit.NewSpacer(jc.Spacing, nil)),
		jotform.WithProbes(probes),
		jotform.WithLogger(c.Logger),
	)
	if jc.APIKey == "" {
		c.Logger.Printf("[App] JOTFORM_API_KEY not set, submissions are served from demo data")
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
