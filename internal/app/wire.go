package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/auth"
	"github.com/PaulBabatuyi/chatsync/internal/data"
	"github.com/PaulBabatuyi/chatsync/internal/db"
	"github.com/PaulBabatuyi/chatsync/internal/ratelimit"
	"github.com/PaulBabatuyi/chatsync/internal/remote"
	"github.com/PaulBabatuyi/chatsync/internal/repository"
	"github.com/PaulBabatuyi/chatsync/internal/screen"
	"github.com/PaulBabatuyi/chatsync/internal/usecase"
	"github.com/google/wire"
)

// App is the fully wired client.
type App struct {
	Config  *Config
	Auth    *auth.Service
	Screens *screen.Screens
}

// ProvideDB connects to MongoDB and makes sure the indexes exist.
func ProvideDB(ctx context.Context, cfg *Config, log *slog.Logger) (*db.Client, func(), error) {
	client, err := db.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, nil, err
	}
	if err := client.CreateIndexes(ctx); err != nil {
		_ = client.Close(context.Background())
		return nil, nil, err
	}
	log.Info("connected to MongoDB", "database", cfg.MongoDatabase)

	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			log.Error("failed to close MongoDB", "error", err)
		}
	}
	return client, cleanup, nil
}

// ProvideDocuments returns the document gateway over client.
func ProvideDocuments(client *db.Client, log *slog.Logger) *remote.MongoDocuments {
	return remote.NewMongoDocuments(client, log)
}

// ProvideAccounts returns the credential store of the auth service.
func ProvideAccounts(client *db.Client) *data.AccountsStore {
	return data.NewAccountsStore(client.AccountsCollection())
}

// ProvideJWTManager signs with JWT_KEYS when set so keys can be rotated,
// and with JWT_SECRET otherwise.
func ProvideJWTManager(cfg *Config) (*auth.JWTManager, error) {
	if cfg.JWTKeys == "" {
		return auth.NewJWTManager(cfg.JWTSecret, cfg.SessionDuration), nil
	}
	keys, err := cfg.SigningKeys()
	if err != nil {
		return nil, err
	}
	return auth.NewJWTManagerFromKeys(keys, cfg.JWTActiveKid, cfg.SessionDuration), nil
}

// ProvideLimiter limits sign-in attempts per email.
func ProvideLimiter(cfg *Config) (*ratelimit.LimiterStore, func()) {
	store := ratelimit.NewLimiterStore(cfg.RateLimitRPM, cfg.RateLimitBurst, time.Minute)
	return store, store.Stop
}

// ProvideChatRepo bounds the chat-list join by JOIN_CONCURRENCY.
func ProvideChatRepo(docs remote.Documents, users repository.UserRepository, cfg *Config, log *slog.Logger) *repository.ChatRepo {
	return repository.NewChatRepo(docs, users, cfg.JoinConcurrency, log)
}

var storeSet = wire.NewSet(
	ProvideDB,
	ProvideDocuments,
	wire.Bind(new(remote.Documents), new(*remote.MongoDocuments)),
	ProvideAccounts,
	wire.Bind(new(auth.AccountStore), new(*data.AccountsStore)),
)

var authSet = wire.NewSet(
	ProvideJWTManager,
	ProvideLimiter,
	auth.NewService,
	wire.Bind(new(repository.Authenticator), new(*auth.Service)),
)

var repositorySet = wire.NewSet(
	repository.NewUserRepo,
	wire.Bind(new(repository.UserRepository), new(*repository.UserRepo)),
	ProvideChatRepo,
	wire.Bind(new(repository.ChatRepository), new(*repository.ChatRepo)),
	repository.NewMessageRepo,
	wire.Bind(new(repository.MessageRepository), new(*repository.MessageRepo)),
	repository.NewAuthRepo,
	wire.Bind(new(repository.AuthRepository), new(*repository.AuthRepo)),
)

var usecaseSet = wire.NewSet(
	usecase.NewLogin,
	usecase.NewRegister,
	usecase.NewLogout,
	usecase.NewUpdateProfile,
	usecase.NewObserveSession,
	usecase.NewCreateChat,
	usecase.NewGetChat,
	usecase.NewGetChats,
	usecase.NewSendMessage,
	usecase.NewGetMessages,
	usecase.NewSearchUsers,
	usecase.NewObserveUser,
	wire.Struct(new(screen.UseCases), "*"),
)

// Set provides an *App from a context, a *Config and a logger.
var Set = wire.NewSet(
	storeSet,
	authSet,
	repositorySet,
	usecaseSet,
	screen.NewScreens,
	wire.Struct(new(App), "*"),
)
