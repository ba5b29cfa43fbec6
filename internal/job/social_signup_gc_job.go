package job

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// SocialSignupGCJob 清理超期未补全昵称和密码的社交注册记录
type SocialSignupGCJob struct {
	memberRepo repository.MemberRepo
}

const incompleteSignupTTL = 24 * time.Hour

func NewSocialSignupGCJob(memberRepo repository.MemberRepo) *SocialSignupGCJob {
	return &SocialSignupGCJob{memberRepo: memberRepo}
}

func (s *SocialSignupGCJob) Run() {
	ctx := context.Background()

	// 多实例部署时只让一个实例执行清理
	lockValue := uuid.New().String()
	locked, err := redis.TryLock(ctx, consts.SignupGCLockKey, lockValue, time.Minute*5, 1)
	if err != nil {
		log.Error("failed to acquire social signup gc lock", "err", err)
		return
	}
	if !locked {
		return
	}
	defer redis.UnLock(ctx, consts.SignupGCLockKey, lockValue)

	log.Info("start social signup gc job")

	before := time.Now().Add(-incompleteSignupTTL)
	count, err := s.memberRepo.DeleteIncompleteBefore(ctx, before)
	if err != nil {
		log.Error("failed to clean incomplete social signups", "err", err)
		return
	}

	if count > 0 {
		log.Info("social signup gc job finished", "cleaned_count", count)
	}
}
