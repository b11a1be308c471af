package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/kubex/rubix-membersearch/internal/config"
	"github.com/kubex/rubix-membersearch/rubix"
	"github.com/kubex/rubix-membersearch/service"
	"github.com/kubex/rubix-membersearch/storage"
)

type importer interface {
	Import(ctx context.Context, memberships rubix.MembershipList, users rubix.UserList) error
}

var errNotImportable = errors.New("storage provider does not accept imports")

func runSearch(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	name := fs.String("name", "", "case-insensitive substring of the user name")
	email := fs.String("email", "", "case-insensitive substring of the user email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filtered := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "name" || f.Name == "email" {
			filtered = true
		}
	})

	p, err := openProvider(cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer closeProvider(log, p)

	return search(ctx, service.NewMembershipService(p, log), filtered, *name, *email, out)
}

func search(ctx context.Context, svc *service.MembershipService, filtered bool, name, email string, out io.Writer) error {
	var result rubix.UserMembershipList
	var err error
	if filtered {
		result, err = svc.FetchMembershipsWithUsers(ctx, name, email)
	} else {
		result, err = svc.FetchAllMembershipsWithUsers(ctx)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runImport(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	from := fs.String("from", "", "storage config JSON of the source provider")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" {
		return errors.New("-from is required")
	}

	source, err := openProvider(*from)
	if err != nil {
		return err
	}
	defer closeProvider(log, source)

	target, err := openProvider(cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer closeProvider(log, target)

	memberships, users, err := copyProvider(ctx, source, target)
	if err != nil {
		return err
	}
	log.Info().Int("memberships", memberships).Int("users", users).Msg("import complete")
	return nil
}

func copyProvider(ctx context.Context, source storage.Provider, target storage.Provider) (int, int, error) {
	dst, ok := target.(importer)
	if !ok {
		return 0, 0, errNotImportable
	}

	memberships, err := source.FetchMemberships(ctx)
	if err != nil {
		return 0, 0, err
	}
	users, err := source.FetchUsers(ctx)
	if err != nil {
		return 0, 0, err
	}

	if err = dst.Import(ctx, memberships, users); err != nil {
		return 0, 0, err
	}
	return memberships.Len(), users.Len(), nil
}
