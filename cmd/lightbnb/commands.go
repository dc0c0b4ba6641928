package main

import (
	"errors"
	"fmt"

	"lightbnb/internal/model"
	"lightbnb/internal/service"
	"lightbnb/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := runMigrationsFn(a.cfg.Database.URL); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				a.log.Info().Msg("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := rollbackFn(a.cfg.Database.URL); err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				a.log.Info().Msg("migrations rolled back")
				return nil
			},
		},
	)
	return cmd
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Create, look up and authenticate users",
	}

	var in service.NewUserInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			u, err := service.RegisterUser(cmd.Context(), db, in)
			if err != nil {
				return err
			}
			return a.printJSON(u)
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "full name")
	add.Flags().StringVar(&in.Email, "email", "", "email address")
	add.Flags().StringVar(&in.Password, "password", "", "plain password, stored hashed")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")
	_ = add.MarkFlagRequired("password")

	var (
		email string
		id    int
	)
	show := &cobra.Command{
		Use:   "show",
		Short: "Look up a user by email or id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			var u *model.User
			if cmd.Flags().Changed("email") {
				u, err = store.GetUserWithEmail(cmd.Context(), db, email)
			} else {
				u, err = store.GetUserWithID(cmd.Context(), db, id)
			}
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("user: %w", errNotFound)
			}
			return a.printJSON(u)
		},
	}
	show.Flags().StringVar(&email, "email", "", "exact email")
	show.Flags().IntVar(&id, "id", 0, "user id")
	show.MarkFlagsOneRequired("email", "id")
	show.MarkFlagsMutuallyExclusive("email", "id")

	var loginEmail, loginPassword string
	login := &cobra.Command{
		Use:   "login",
		Short: "Check a user's credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			u, err := service.Authenticate(cmd.Context(), db, loginEmail, loginPassword)
			if err != nil {
				return err
			}
			return a.printJSON(u)
		},
	}
	login.Flags().StringVar(&loginEmail, "email", "", "email address")
	login.Flags().StringVar(&loginPassword, "password", "", "plain password")
	_ = login.MarkFlagRequired("email")
	_ = login.MarkFlagRequired("password")

	cmd.AddCommand(add, show, login)
	return cmd
}

type searchFlags struct {
	city      string
	ownerID   int
	minPrice  string
	maxPrice  string
	minRating float64
	limit     int
}

func (s *searchFlags) filter(cmd *cobra.Command) (store.PropertyFilter, error) {
	f := store.PropertyFilter{City: s.city}
	if cmd.Flags().Changed("owner-id") {
		f.OwnerID = &s.ownerID
	}
	if cmd.Flags().Changed("min-rating") {
		f.MinimumRating = &s.minRating
	}
	var err error
	if f.MinimumPricePerNight, err = parsePrice(cmd, "min-price", s.minPrice); err != nil {
		return f, err
	}
	if f.MaximumPricePerNight, err = parsePrice(cmd, "max-price", s.maxPrice); err != nil {
		return f, err
	}
	return f, nil
}

func parsePrice(cmd *cobra.Command, flag, raw string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(flag) {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("--%s: must not be negative", flag)
	}
	if _, err := model.Cents(d); err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return &d, nil
}

func newPropertiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Search and create properties",
	}

	var sf searchFlags
	search := &cobra.Command{
		Use:   "search",
		Short: "List properties matching the filters, cheapest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := sf.filter(cmd)
			if err != nil {
				return err
			}
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			searcher := service.NewPropertySearch(db, nil, 0, a.log)
			if a.cfg.CacheEnabled() {
				c, err := newRedisClient(cmd.Context(), a.cfg.Redis)
				if err != nil {
					a.log.Warn().Err(err).Msg("search cache unavailable")
				} else {
					defer c.Close()
					searcher = service.NewPropertySearch(db, c, a.cfg.Search.CacheTTL, a.log)
				}
			}
			listings, err := searcher.Search(cmd.Context(), f, sf.limit)
			if err != nil {
				return err
			}
			return a.printJSON(listings)
		},
	}
	search.Flags().StringVar(&sf.city, "city", "", "city substring, case-insensitive")
	search.Flags().IntVar(&sf.ownerID, "owner-id", 0, "owner user id")
	search.Flags().StringVar(&sf.minPrice, "min-price", "", "minimum nightly price, e.g. 50 or 49.99")
	search.Flags().StringVar(&sf.maxPrice, "max-price", "", "maximum nightly price")
	search.Flags().Float64Var(&sf.minRating, "min-rating", 0, "minimum average rating")
	search.Flags().IntVar(&sf.limit, "limit", store.DefaultLimit, "maximum number of results")

	var (
		p    model.Property
		cost string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parsePrice(cmd, "cost-per-night", cost)
			if err != nil {
				return err
			}
			cents, err := model.Cents(*d)
			if err != nil {
				return err
			}
			p.CostPerNight = int(cents)

			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			created, err := service.CreateProperty(cmd.Context(), db, &p)
			if err != nil {
				return err
			}
			return a.printJSON(created)
		},
	}
	fs := add.Flags()
	fs.IntVar(&p.OwnerID, "owner-id", 0, "owner user id")
	fs.StringVar(&p.Title, "title", "", "")
	fs.StringVar(&p.Description, "description", "", "")
	fs.StringVar(&p.ThumbnailPhotoURL, "thumbnail-photo-url", "", "")
	fs.StringVar(&p.CoverPhotoURL, "cover-photo-url", "", "")
	fs.StringVar(&cost, "cost-per-night", "", "nightly price in major units, e.g. 120.50")
	fs.IntVar(&p.ParkingSpaces, "parking-spaces", 0, "")
	fs.IntVar(&p.NumberOfBathrooms, "number-of-bathrooms", 0, "")
	fs.IntVar(&p.NumberOfBedrooms, "number-of-bedrooms", 0, "")
	fs.StringVar(&p.Country, "country", "", "")
	fs.StringVar(&p.Street, "street", "", "")
	fs.StringVar(&p.City, "city", "", "")
	fs.StringVar(&p.Province, "province", "", "")
	fs.StringVar(&p.PostCode, "post-code", "", "")
	for _, name := range []string{"owner-id", "title", "cost-per-night", "country", "street", "city", "province", "post-code"} {
		_ = add.MarkFlagRequired(name)
	}

	cmd.AddCommand(search, add)
	return cmd
}

func newReservationsCmd(a *app) *cobra.Command {
	var guestID, limit int
	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List a guest's past reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if guestID <= 0 {
				return errors.New("--guest-id must be positive")
			}
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			out, err := store.GetAllReservations(cmd.Context(), db, guestID, limit)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	cmd.Flags().IntVar(&guestID, "guest-id", 0, "guest user id")
	cmd.Flags().IntVar(&limit, "limit", store.DefaultLimit, "maximum number of results")
	_ = cmd.MarkFlagRequired("guest-id")
	return cmd
}
