package wire

import (
	"Patchouli/internal/api"
	"Patchouli/internal/api/config"
	"Patchouli/internal/api/handler"
	"Patchouli/internal/job"
	"Patchouli/internal/pkg/cron"
	"Patchouli/internal/pkg/es"
	"Patchouli/internal/pkg/github"
	"Patchouli/internal/pkg/kafka"
	"Patchouli/internal/pkg/llm"
	pkgmongo "Patchouli/internal/pkg/mongo"
	"Patchouli/internal/pkg/preview"
	"Patchouli/internal/repository"
	"Patchouli/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	Producer     kafka.EventProducer
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postDBRepo := repository.NewPostRepository(db)
	postESRepo := es.NewPostRepo(es.Client)
	noticeRepo := pkgmongo.NewNoticeRepo(mongoDB)

	producer, err := kafka.NewEventProducer(cfg)
	if err != nil {
		return nil, err
	}

	clueGen := llm.NewClueGenerator()
	translator := llm.NewTranslator()
	ghClient := github.NewClient(cfg.GitHub)
	linkFetcher := preview.NewFetcher()

	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postDBRepo, postESRepo, userRepo, clueGen, producer)
	searchService := service.NewSearchService(postESRepo, translator)
	noticeService := service.NewNotificationService(noticeRepo)
	attachmentService := service.NewAttachmentService(ghClient, linkFetcher)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		PostHandler:       handler.NewPostHandler(postService),
		ModerationHandler: handler.NewModerationHandler(postService),
		SearchHandler:     handler.NewSearchHandler(searchService),
		NoticeHandler:     handler.NewNoticeHandler(noticeService),
		AttachmentHandler: handler.NewAttachmentHandler(attachmentService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, postDBRepo, postESRepo, noticeRepo)
	if err != nil {
		return nil, err
	}

	indexSyncJob := job.NewIndexSyncJob(postDBRepo, postESRepo)
	cronMgr := cron.NewCronManager(indexSyncJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		Producer:     producer,
	}, nil
}
