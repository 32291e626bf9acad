package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/pricofy/football-api/internal/domain"
)

// DynamoAPI is the subset of the DynamoDB client used by Dynamo.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Dynamo stores matches in a DynamoDB table keyed by matchId. When sortKey
// is set, items are addressed by (matchId, teamName) and reads by id query
// the partition.
type Dynamo struct {
	client    DynamoAPI
	tableName string
	sortKey   string
}

// NewDynamo creates a Dynamo store on the given table.
func NewDynamo(client DynamoAPI, tableName, sortKey string) *Dynamo {
	return &Dynamo{client: client, tableName: tableName, sortKey: sortKey}
}

// NewDynamoClient builds a DynamoDB client. A non-empty endpoint points it
// at DynamoDB Local or another compatible server.
func NewDynamoClient(cfg aws.Config, endpoint string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

func (d *Dynamo) PutMatch(ctx context.Context, m domain.Match) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("failed to marshal match %d: %w", m.MatchID, err)
	}
	if d.sortKey != "" {
		if _, ok := item[d.sortKey]; !ok {
			item[d.sortKey] = &types.AttributeValueMemberS{Value: m.TeamName}
		}
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put match %d in table '%s': %w", m.MatchID, d.tableName, err)
	}
	return nil
}

func (d *Dynamo) GetMatch(ctx context.Context, matchID int) (*domain.Match, error) {
	if d.sortKey != "" {
		return d.queryMatch(ctx, matchID)
	}

	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.tableName),
		Key:            partitionKey(matchID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d from table '%s': %w", matchID, d.tableName, err)
	}
	if out.Item == nil {
		return nil, domain.ErrNotFound
	}
	return decodeMatch(matchID, out.Item)
}

// queryMatch returns the first item of the matchId partition.
func (d *Dynamo) queryMatch(ctx context.Context, matchID int) (*domain.Match, error) {
	expr, err := partitionQueryExpression(matchID)
	if err != nil {
		return nil, err
	}
	out, err := d.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(d.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ConsistentRead:            aws.Bool(true),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query match %d from table '%s': %w", matchID, d.tableName, err)
	}
	if len(out.Items) == 0 {
		return nil, domain.ErrNotFound
	}
	return decodeMatch(matchID, out.Items[0])
}

func decodeMatch(matchID int, item map[string]types.AttributeValue) (*domain.Match, error) {
	var m domain.Match
	if err := attributevalue.UnmarshalMap(item, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match %d: %w", matchID, err)
	}
	return &m, nil
}

func (d *Dynamo) ListMatches(ctx context.Context) ([]domain.Match, error) {
	return d.FindByTeams(ctx, domain.TeamFilter{})
}

// FindByTeams scans every page of the table. contains() on a DynamoDB list
// compares whole elements, so the substring filter runs on decoded items.
func (d *Dynamo) FindByTeams(ctx context.Context, f domain.TeamFilter) ([]domain.Match, error) {
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.tableName),
	})

	matches := []domain.Match{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table '%s': %w", d.tableName, err)
		}

		var items []domain.Match
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scan result: %w", err)
		}
		for _, m := range items {
			if f.Matches(m) {
				matches = append(matches, m)
			}
		}
	}
	return matches, nil
}

func (d *Dynamo) UpdateMatch(ctx context.Context, key domain.MatchKey, u domain.MatchUpdate) error {
	expr, err := updateExpression(u)
	if err != nil {
		return err
	}

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       d.updateKey(key),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("failed to update match %d in table '%s': %w", key.MatchID, d.tableName, err)
	}
	return nil
}

// PutTranslation runs two sequential updates: the first creates an empty
// translations map when missing, the second sets the language entry only
// if it does not exist yet.
func (d *Dynamo) PutTranslation(ctx context.Context, key domain.MatchKey, lang, text string) error {
	matchID := key.MatchID
	ensure, err := ensureTranslationsExpression()
	if err != nil {
		return err
	}
	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       d.updateKey(key),
		UpdateExpression:          ensure.Update(),
		ExpressionAttributeNames:  ensure.Names(),
		ExpressionAttributeValues: ensure.Values(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize translations for match %d: %w", matchID, err)
	}

	set, err := putTranslationExpression(lang, text)
	if err != nil {
		return err
	}
	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.tableName),
		Key:                       d.updateKey(key),
		UpdateExpression:          set.Update(),
		ConditionExpression:       set.Condition(),
		ExpressionAttributeNames:  set.Names(),
		ExpressionAttributeValues: set.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return domain.ErrTranslationExists
		}
		return fmt.Errorf("failed to store %s translation for match %d: %w", lang, matchID, err)
	}
	return nil
}

func (d *Dynamo) updateKey(key domain.MatchKey) map[string]types.AttributeValue {
	k := partitionKey(key.MatchID)
	if d.sortKey != "" {
		k[d.sortKey] = &types.AttributeValueMemberS{Value: key.TeamName}
	}
	return k
}

func partitionKey(matchID int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrMatchID: &types.AttributeValueMemberN{Value: strconv.Itoa(matchID)},
	}
}
