// 仿真输出：回合汇总写入MongoDB，逐步观测写入msgpack轨迹文件
package output

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/intersim/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var log = logrus.WithField("module", "output")

// EpisodeRecord 回合汇总记录
type EpisodeRecord struct {
	ID        string          `bson:"_id"`        // 记录ID（uuid）
	RunID     string          `bson:"run_id"`     // 本次运行ID，同一次运行的所有回合相同
	Episode   int32           `bson:"episode"`    // 回合序号，从0开始
	Policy    string          `bson:"policy"`     // 信控策略名称
	Seed      int64           `bson:"seed"`       // 随机种子
	Spawned   int32           `bson:"spawned"`    // 生成车辆数
	Summary   metrics.Summary `bson:"summary"`    // 统计汇总
	CreatedAt time.Time       `bson:"created_at"` // 写入时间
}

// IEpisodeRecorder 回合汇总输出接口
type IEpisodeRecorder interface {
	Write(ctx context.Context, rec EpisodeRecord) error
	Close(ctx context.Context) error
}

// Discard 丢弃所有记录
type Discard struct{}

func (Discard) Write(context.Context, EpisodeRecord) error { return nil }
func (Discard) Close(context.Context) error                { return nil }

// MongoRecorder 将回合汇总写入MongoDB集合
type MongoRecorder struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoRecorder 连接MongoDB
// 功能：建立连接并Ping确认可用
// 参数：ctx-连接上下文，uri-连接字符串，db-数据库名，col-集合名
// 返回：记录器，连接失败返回错误
func NewMongoRecorder(ctx context.Context, uri, db, col string) (*MongoRecorder, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Infof("write episode summaries to mongo %s.%s", db, col)
	return &MongoRecorder{
		client: client,
		col:    client.Database(db).Collection(col),
	}, nil
}

// Write 插入一条回合汇总
func (r *MongoRecorder) Write(ctx context.Context, rec EpisodeRecord) error {
	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("mongo insert episode %d: %w", rec.Episode, err)
	}
	return nil
}

// Close 断开连接
func (r *MongoRecorder) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
