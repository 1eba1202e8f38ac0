package cli

import (
	"fmt"
	"time"

	"github.com/martijn/miniblog/internal/core/repository"
	"github.com/martijn/miniblog/internal/core/service"
	"github.com/martijn/miniblog/internal/infrastructure/sqlite"
	"github.com/martijn/miniblog/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "miniblog",
	Short: "miniblog - a small multi-user blogging site",
	Long: `miniblog is a small multi-user blogging website.

It provides:
- Username/password login with server-issued session cookies
- Automatic account creation on first login
- Blog posts and comments behind authentication
- A users CLI for account administration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/miniblog/config.yml)")
}

// Services bundles the initialized dependencies for a command run.
type Services struct {
	DB          *sqlite.DB
	UserRepo    repository.UserRepository
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	AuthService *service.AuthService
	BlogService *service.BlogService
}

func (s *Services) Close() error {
	return s.DB.Close()
}

// initServices initializes all services
func initServices() (*Services, error) {
	// Initialize database
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo,
		service.WithSessionTTL(time.Duration(cfg.SessionTTLSeconds)*time.Second),
		service.WithBcryptCost(cfg.BcryptCost),
	)
	blogService := service.NewBlogService(postRepo, commentRepo)

	return &Services{
		DB:          db,
		UserRepo:    userRepo,
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
		AuthService: authService,
		BlogService: blogService,
	}, nil
}
