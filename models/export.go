package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Bennybas/hcp-hco-backend/cache"
	conf "github.com/Bennybas/hcp-hco-backend/config"
)

const exportTimeout = 5 * time.Minute

// ExportSnapshots writes every warm dataset to the S3 bucket as JSON,
// one object per key under snapshots/<date>/. Downstream reporting
// reads these instead of hammering the warehouse. A no-op when S3 is
// not configured.
func ExportSnapshots(svc *cache.Service) {
	bucket := conf.ConfigStrings[conf.AWSS3BucketName]
	accessKey := conf.ConfigStrings[conf.AWSAccessKeyID]
	secretKey := conf.ConfigStrings[conf.AWSSecretAccessKey]
	if bucket == "" || accessKey == "" || secretKey == "" {
		return
	}

	endpoint := conf.ConfigStrings[conf.AWSS3Endpoint]
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: true,
		Region: conf.ConfigStrings[conf.AWSRegion],
	})
	if err != nil {
		glog.Errorf("minio.New() %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	exported := 0
	for _, snap := range svc.Snapshot() {
		body, err := json.Marshal(snap.Results)
		if err != nil {
			glog.Errorf("json.Marshal(%q) %+v", snap.Key, err)
			continue
		}

		objectName := fmt.Sprintf(
			"snapshots/%s/%s.json",
			snap.StoredAt.UTC().Format("2006-01-02"),
			objectSafeKey(snap.Key),
		)

		_, err = client.PutObject(
			ctx,
			bucket,
			objectName,
			bytes.NewReader(body),
			int64(len(body)),
			minio.PutObjectOptions{ContentType: "application/json"},
		)
		if err != nil {
			glog.Errorf("client.PutObject(%q) %+v", objectName, err)
			continue
		}
		exported++
	}

	if glog.V(2) {
		glog.Infof("Exported %d dataset snapshots to s3://%s", exported, bucket)
	}
}

// objectSafeKey flattens a cache key into an S3-friendly object name
// component
func objectSafeKey(key string) string {
	r := strings.NewReplacer("|", "_", "=", "-", "/", "-", " ", "-")
	return r.Replace(key)
}
