// Command gloss is a small CLI for exercising the Glosshouse SDK against
// a live backend: credential login, session inspection, demo mode, and a
// realtime event tail.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/glosshouse/glosshouse-go/api"
	"github.com/glosshouse/glosshouse-go/config"
	"github.com/glosshouse/glosshouse-go/realtime"
	"github.com/glosshouse/glosshouse-go/session"
	"github.com/glosshouse/glosshouse-go/tokenstore"
)

func main() {
	var (
		envFile  = flag.String("env", "", "Path to optional .env file")
		confFile = flag.String("config", "", "Path to optional YAML config")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *confFile != "" {
		cfg, err = config.LoadFile(*confFile, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	app, err := buildApp(cfg, log)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := app.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gloss [flags] <command>

commands:
  login -email <email> -password <password>
  demo -role <user|salon|stylist|admin>
  status
  logout
  listen`)
}

// app bundles the composed SDK objects for the subcommands.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *session.Store
	client *api.Client
}

func buildApp(cfg *config.Config, log *logrus.Logger) (*app, error) {
	var tokens tokenstore.Store
	var err error
	if cfg.RedisAddr != "" {
		tokens, err = tokenstore.NewRedis(tokenstore.RedisConfig{
			Client: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
		})
	} else {
		tokens, err = tokenstore.NewFile(tokenstore.FileConfig{Path: cfg.TokenPath})
	}
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(session.Config{Tokens: tokens, Logger: log})
	if err != nil {
		return nil, err
	}

	client, err := api.New(api.Config{
		BaseURL:          cfg.APIBaseURL,
		Timeout:          cfg.HTTPTimeout,
		TokenSource:      store.Token,
		Logger:           log,
		OnSessionInvalid: store.Logout,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, store: store, client: client}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "demo":
		return a.demo(args)
	case "status":
		return a.status(ctx)
	case "logout":
		return a.logout(ctx)
	case "listen":
		return a.listen(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	result, err := a.client.Auth().Login(ctx, api.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if err := a.store.Login(ctx, session.Credentials{
		User:       result.User,
		Token:      result.Token,
		Role:       result.Role,
		FirstLogin: result.FirstLogin,
	}); err != nil {
		return err
	}

	snap := a.store.Snapshot()
	fmt.Printf("logged in as %s (%s), area %s\n", result.User.Name, snap.Role, snap.Area())
	return nil
}

func (a *app) demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	role := fs.String("role", "user", "Demo role")
	fs.Parse(args)

	a.store.DemoLogin(session.ParseRole(*role))
	snap := a.store.Snapshot()
	fmt.Printf("demo session as %s, salon=%q stylist=%q\n", snap.Role, snap.SalonID, snap.StylistID)
	return nil
}

func (a *app) status(ctx context.Context) error {
	token, err := a.store.Restore(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Println("not logged in")
		return nil
	}

	user, err := a.client.Auth().FetchProfile(ctx)
	if err != nil {
		return err
	}
	if err := a.store.Login(ctx, session.Credentials{User: user, Token: token}); err != nil {
		return err
	}

	snap := a.store.Snapshot()
	fmt.Printf("logged in as %s (%s), area %s\n", user.Name, snap.Role, snap.Area())
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if _, err := a.store.Restore(ctx); err != nil {
		return err
	}
	if a.store.Token() != "" {
		if err := a.client.Auth().Logout(ctx); err != nil {
			a.log.WithError(err).Warn("backend logout failed; clearing local session anyway")
		}
	}
	if err := a.store.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (a *app) listen(ctx context.Context) error {
	token, err := a.store.Restore(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("listen requires a logged-in session")
	}

	user, err := a.client.Auth().FetchProfile(ctx)
	if err != nil {
		return err
	}
	if err := a.store.Login(ctx, session.Credentials{User: user, Token: token}); err != nil {
		return err
	}

	snap := a.store.Snapshot()
	socket, err := realtime.Dial(ctx, realtime.Config{
		URL: a.cfg.SocketURL,
		Identity: realtime.Identity{
			UserID:   user.ID,
			Timezone: user.Timezone,
			Role:     snap.Role,
			SalonID:  snap.SalonID,
		},
		Logger: a.log,
	})
	if err != nil {
		return err
	}
	defer socket.Close()

	for _, event := range []string{
		realtime.EventAppointmentRequest,
		realtime.EventFirstLoginReward,
		realtime.EventFirstAppointmentReward,
		realtime.EventCompleteProfile,
	} {
		event := event
		defer socket.On(event, func(e realtime.Event) {
			fmt.Printf("%s: %s\n", event, string(e.Payload))
		})()
	}

	presence := realtime.NewPresenceStore()
	defer presence.Bind(socket)()

	fmt.Println("listening; ctrl-c to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
