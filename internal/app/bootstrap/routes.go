// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	applicationsfeature "github.com/hireloop/hireloop/internal/app/features/applications"
	healthfeature "github.com/hireloop/hireloop/internal/app/features/health"
	identityfeature "github.com/hireloop/hireloop/internal/app/features/identity"
	resumefeature "github.com/hireloop/hireloop/internal/app/features/resume"
	applicationstore "github.com/hireloop/hireloop/internal/app/store/applications"
	jobstore "github.com/hireloop/hireloop/internal/app/store/jobs"
	"github.com/hireloop/hireloop/internal/app/store/queries/userapplications"
	userstore "github.com/hireloop/hireloop/internal/app/store/users"
	"github.com/hireloop/hireloop/internal/app/system/blobstore"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// hireloop mounts the health endpoint, a file server for locally stored
// resumes, and the /api/users feature routers: identity sync, applications,
// and resume upload.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	uploads, err := newResumeStorage(appCfg, logger)
	if err != nil {
		logger.Error("resume storage init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(deps.MongoDatabase)
	jobs := jobstore.New(deps.MongoDatabase)
	apps := applicationstore.New(deps.MongoDatabase)
	listings := userapplications.New(deps.MongoDatabase)

	identitySvc := identityfeature.NewService(users, logger)
	applySvc := applicationsfeature.NewService(identitySvc, apps, jobs, logger)
	querySvc := applicationsfeature.NewQueryService(users, listings)
	resumeSvc := resumefeature.NewService(users, uploads, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Locally stored resumes are served straight off disk. With s3 storage
	// the resume URLs point at the bucket and this route is not needed.
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	identityHandler := identityfeature.NewHandler(identitySvc, logger)
	applicationsHandler := applicationsfeature.NewHandler(applySvc, querySvc, logger)
	resumeHandler := resumefeature.NewHandler(resumeSvc, appCfg.ResumeMaxBytes, logger)

	r.Route("/api/users", func(r chi.Router) {
		identityfeature.MountRoutes(r, identityHandler)
		applicationsfeature.MountRoutes(r, applicationsHandler)
		resumefeature.MountRoutes(r, resumeHandler)
	})

	return r, nil
}

// newResumeStorage builds the resume uploader from config.
func newResumeStorage(appCfg AppConfig, logger *zap.Logger) (blobstore.Uploader, error) {
	var (
		store storage.Store
		err   error
	)
	switch appCfg.StorageType {
	case "s3":
		store, err = storage.NewS3(context.Background(), storage.S3Config{
			Region: appCfg.StorageS3Region,
			Bucket: appCfg.StorageS3Bucket,
			Prefix: appCfg.StorageS3Prefix,
		})
	default:
		store, err = storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	}
	if err != nil {
		return nil, err
	}

	logger.Info("resume storage ready", zap.String("type", appCfg.StorageType))
	return blobstore.NewFileStore(store, appCfg.StoragePublicURL, "resumes"), nil
}
