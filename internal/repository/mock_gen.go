// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./deal.go -destination=../mocks/mock_deal_repository.go -package=mocks DealRepositoryIface
//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./notification.go -destination=../mocks/mock_notification_repository.go -package=mocks NotificationRepositoryIface
//go:generate mockgen -source=./partner.go -destination=../mocks/mock_partner_repository.go -package=mocks PartnerRepositoryIface
