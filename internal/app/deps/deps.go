package deps

import (
	"context"
	"fmt"
	"pwreset/internal/config"
	dl "pwreset/internal/core/domain/logging"
	"pwreset/internal/core/domain/mail"
	duow "pwreset/internal/core/domain/unit_of_work"
	"pwreset/internal/core/domain/user"
	"pwreset/internal/db"
	uow "pwreset/internal/db/unit_of_work"
	dbuser "pwreset/internal/db/user"
	"pwreset/internal/http/metrics"
	"pwreset/internal/implementations/email"
	"pwreset/internal/implementations/logging"
	passwordhasher "pwreset/internal/implementations/password_hasher"
	resettokengenerator "pwreset/internal/implementations/reset_token_generator"
	"pwreset/internal/implementations/smtp"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config  *config.Config
	Logger  dl.Logger
	Metrics *metrics.Metrics

	DB *pgxpool.Pool

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	MailSender                  mail.Sender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	deps.applyMigrations()
	closePgxPool := deps.initPgxPool()

	deps.Metrics = metrics.New()
	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = resettokengenerator.NewGenerator()
	deps.MailSender = deps.initMailSender()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closePgxPool,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger, err := logging.NewZapLogger(deps.Config.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("could not create logger: %v", err))
	}
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) applyMigrations() {
	if deps.Config.MigrationsPath == "" {
		deps.Logger.Info(context.Background(), "Migrations path is not set, skip applying migrations.")
		return
	}
	err := db.ApplyMigrations(deps.Config.PostgresqlURL, deps.Config.MigrationsPath)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not apply migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "Migrations have been applied.")
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initMailSender() mail.Sender {
	switch deps.Config.MailTransport {
	case config.MAIL_TRANSPORT_SES:
		deps.Logger.Info(context.Background(), "Emails are sent with Amazon SES.")
		return email.NewEmailSender(deps.initAwsConfig())
	default:
		deps.Logger.Info(
			context.Background(),
			"Emails are sent over SMTP.",
			dl.Entry("host", deps.Config.SmtpHost),
			dl.Entry("port", deps.Config.SmtpPort),
		)
		return smtp.NewSender(
			deps.Config.SmtpHost,
			deps.Config.SmtpPort,
			deps.Config.SmtpUsername,
			deps.Config.SmtpPassword,
		)
	}
}

func (deps *Deps) initAwsConfig() aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
