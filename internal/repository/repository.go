// Package repository provides PostgreSQL persistence for the SMS subsystem.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db               *sqlx.DB
	profile          ProfileRepository
	optOut           OptOutRepository
	authorizedNumber AuthorizedNumberRepository
	conversation     ConversationRepository
	message          MessageRepository
	campaign         CampaignRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:               db,
		profile:          NewProfileRepository(db),
		optOut:           NewOptOutRepository(db),
		authorizedNumber: NewAuthorizedNumberRepository(db),
		conversation:     NewConversationRepository(db),
		message:          NewMessageRepository(db),
		campaign:         NewCampaignRepository(db),
	}
}

func (r *repositoryImpl) Profile() ProfileRepository { return r.profile }

func (r *repositoryImpl) OptOut() OptOutRepository { return r.optOut }

func (r *repositoryImpl) AuthorizedNumber() AuthorizedNumberRepository { return r.authorizedNumber }

func (r *repositoryImpl) Conversation() ConversationRepository { return r.conversation }

func (r *repositoryImpl) Message() MessageRepository { return r.message }

func (r *repositoryImpl) Campaign() CampaignRepository { return r.campaign }

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
