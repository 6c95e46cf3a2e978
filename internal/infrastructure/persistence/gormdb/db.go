package gormdb

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. database.driver选择sqlite（默认内存库）或mysql
// 2. TranslateError让驱动把唯一索引冲突翻译成gorm.ErrDuplicatedKey
// 3. 连接池参数来自配置；内存sqlite必须只有一个连接
// 4. 启动时AutoMigrate建表
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.Database.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.MySQLDSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段和索引，不会删除现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&BookModel{},
	)
}

// AuthorModel GORM作者模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/author/entity.go是领域实体，不依赖GORM
// 3. NameKey保存小写去空格的名字，唯一索引保证大小写不敏感唯一
type AuthorModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:200;not null;comment:作者名"`
	NameKey     string    `gorm:"uniqueIndex;size:200;not null;comment:规范化作者名"`
	DateOfBirth time.Time `gorm:"comment:出生日期"`
	Biography   string    `gorm:"type:text;comment:简介"`
	Version     uint      `gorm:"not null;default:1;comment:乐观锁版本号"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,与创建前的存在性检查共同保证唯一
// 2. AuthorID只建普通索引,不建外键(作者删除后图书保留)
// 3. 物理删除,删除后ISBN可以被新图书复用
// 4. TitleKey是Go里转小写的书名,搜索只匹配这一列
type BookModel struct {
	ID            uint      `gorm:"primaryKey"`
	Title         string    `gorm:"size:200;not null;comment:书名"`
	TitleKey      string    `gorm:"size:200;not null;default:'';comment:规范化书名"`
	ISBN          string    `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	PublishedYear int       `gorm:"comment:出版年份"`
	AuthorID      uint      `gorm:"index;comment:作者ID"`
	Version       uint      `gorm:"not null;default:1;comment:乐观锁版本号"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
