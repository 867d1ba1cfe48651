package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/PaulBabatuyi/chatsync/internal/app"
	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/screen"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes reported to the shell.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	chatID := flag.String("chat", "", "watch one conversation instead of the chat list")
	send := flag.String("send", "", "send this message into -chat first")
	plain := flag.Bool("plain", false, "disable colours")
	flag.Parse()

	if *plain {
		color.Disable()
	}

	code, err := run(*chatID, *send)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatsync terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the client, signs in and re-renders the selected screen until
// SIGINT or SIGTERM, then signs out.
func run(chatID, send string) (int, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	if send != "" && chatID == "" {
		return exitConfig, errors.New("-send requires -chat")
	}

	log := logs.GetLoggerFromString(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := initializeApp(ctx, cfg, log)
	if err != nil {
		return exitRuntime, err
	}
	defer cleanup()

	authScreen := a.Screens.Auth(ctx)
	defer authScreen.Close()

	me, err := signIn(ctx, a, authScreen)
	if err != nil {
		return exitRuntime, err
	}
	log.Info("signed in", "user_id", me.ID, "display_name", me.DisplayName)

	defer func() {
		// ctx is already done here
		if err := authScreen.Logout(context.Background()); err != nil {
			log.Error("failed to sign out", "error", err)
		}
	}()

	if chatID == "" {
		watchChats(ctx, a.Screens, me)
		return exitOK, nil
	}
	return watchChat(ctx, a.Screens, chatID, me, send, log)
}

// signIn restores CHATSYNC_TOKEN, registers or logs in, then waits for the
// session stream to report the user.
func signIn(ctx context.Context, a *app.App, s *screen.AuthScreen) (data.User, error) {
	cfg := a.Config

	var err error
	switch {
	case cfg.Token != "":
		_, err = a.Auth.Restore(ctx, cfg.Token)
	case cfg.Register:
		s.SetPassword(cfg.Password)
		if st := s.State().Get(); !st.StrongPassword {
			fmt.Fprintln(os.Stderr, color.Yellow.Sprintf("weak password (%.0f bits of entropy)", st.PasswordStrength))
		}
		err = s.Register(ctx, cfg.Email, cfg.Password, cfg.DisplayName)
	default:
		err = s.Login(ctx, cfg.Email, cfg.Password)
	}
	if err != nil {
		return data.User{}, err
	}

	for st := range s.State().Watch(ctx) {
		if st.User != nil {
			return *st.User, nil
		}
	}
	return data.User{}, ctx.Err()
}

func watchChats(ctx context.Context, screens *screen.Screens, me data.User) {
	s := screens.ChatList(ctx, me.ID)
	defer s.Close()

	for st := range s.State().Watch(ctx) {
		renderChatList(os.Stdout, me, st)
	}
}

func watchChat(ctx context.Context, screens *screen.Screens, chatID string, me data.User, send string, log *slog.Logger) (int, error) {
	s := screens.Chat(ctx, chatID, me)
	defer s.Close()

	if send != "" {
		s.SetDraft(send)
		if err := s.Send(ctx); err != nil {
			return exitRuntime, err
		}
		log.Info("message sent", "chat_id", chatID)
	}

	for st := range s.State().Watch(ctx) {
		renderChat(os.Stdout, st)
	}
	return exitOK, nil
}
