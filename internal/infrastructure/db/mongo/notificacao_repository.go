package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

const notificacaoCollection = "notificacoes"

// NotificacaoRepositoryMongo persists broadcast notifications.
type NotificacaoRepositoryMongo struct {
	router *StoreRouter
}

func NewNotificacaoRepository(router *StoreRouter) *NotificacaoRepositoryMongo {
	return &NotificacaoRepositoryMongo{router: router}
}

type notificacaoDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Titulo   string             `bson:"titulo"`
	Mensagem string             `bson:"mensagem"`
	Tipo     string             `bson:"tipo"`
	Alvo     string             `bson:"alvo"`
	Ativo    bool               `bson:"ativo"`
	CriadoEm time.Time          `bson:"criado_em"`
}

func (r *NotificacaoRepositoryMongo) coll(ctx context.Context) *mongo.Collection {
	return r.router.Database(ctx, domain.KindNotificacao).Collection(notificacaoCollection)
}

func (r *NotificacaoRepositoryMongo) Create(ctx context.Context, n *domain.Notificacao) (*domain.Notificacao, error) {
	doc := notificacaoDoc{
		Titulo:   n.Titulo,
		Mensagem: n.Mensagem,
		Tipo:     string(n.Tipo),
		Alvo:     string(n.Alvo),
		Ativo:    n.Ativo,
		CriadoEm: n.CriadoEm,
	}

	res, err := r.coll(ctx).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notificacao: %w", err)
	}

	created := *n
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *NotificacaoRepositoryMongo) List(ctx context.Context, ativoOnly bool) ([]*domain.Notificacao, error) {
	query := bson.M{}
	if ativoOnly {
		query["ativo"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "criado_em", Value: -1}})
	cur, err := r.coll(ctx).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list notificacoes: %w", err)
	}
	defer cur.Close(ctx)

	notificacoes := make([]*domain.Notificacao, 0)
	for cur.Next(ctx) {
		var doc notificacaoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode notificacao: %w", err)
		}
		notificacoes = append(notificacoes, &domain.Notificacao{
			ID:       doc.ID.Hex(),
			Titulo:   doc.Titulo,
			Mensagem: doc.Mensagem,
			Tipo:     domain.NotificacaoTipo(doc.Tipo),
			Alvo:     domain.NotificacaoAlvo(doc.Alvo),
			Ativo:    doc.Ativo,
			CriadoEm: doc.CriadoEm.UTC(),
		})
	}
	return notificacoes, cur.Err()
}

func (r *NotificacaoRepositoryMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificacaoNotFound
	}

	res, err := r.coll(ctx).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete notificacao: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotificacaoNotFound
	}
	return nil
}
