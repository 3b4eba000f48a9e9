package dynamodb

import (
	"context"
	"fmt"
	"moviecatalog/movie"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type MovieRepository struct {
	client *dynamodb.Client
	table  string
}

type movieItem struct {
	ID     string `dynamodbav:"id"`
	Name   string `dynamodbav:"name"`
	Year   string `dynamodbav:"year"`
	Rating string `dynamodbav:"rating"`
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
	}
}

// CreateMovie stores the movie under a UUIDv7 key so that scans can be put
// back into insertion order.
func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := r.validate(); err != nil {
		return movie.Movie{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: generate movie id: %w", err)
	}

	item := movieItem{
		ID:     id.String(),
		Name:   m.Name,
		Year:   m.Year,
		Rating: m.Rating,
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: put movie: %w", err)
	}

	return toMovie(item), nil
}

func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	var items []movieItem
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: &r.table,
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		items = append(items, page...)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	movies := make([]movie.Movie, len(items))
	for i, item := range items {
		movies[i] = toMovie(item)
	}
	return movies, nil
}

func (r *MovieRepository) DeleteMovie(ctx context.Context, id string) (int64, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return 0, movie.ErrInvalidID
	}
	if err := r.validate(); err != nil {
		return 0, err
	}

	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: parsed.String()},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: delete movie: %w", err)
	}
	if len(out.Attributes) == 0 {
		return 0, nil
	}
	return 1, nil
}

func (r *MovieRepository) Ping(ctx context.Context) error {
	if err := r.validate(); err != nil {
		return err
	}

	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &r.table})
	if err != nil {
		return fmt.Errorf("dynamodb: describe table: %w", err)
	}
	return nil
}

func (r *MovieRepository) validate() error {
	if err := validateClient(r.client); err != nil {
		return err
	}
	return validateTable(r.table)
}

func toMovie(item movieItem) movie.Movie {
	return movie.Movie{
		ID:     item.ID,
		Name:   item.Name,
		Year:   item.Year,
		Rating: item.Rating,
	}
}
