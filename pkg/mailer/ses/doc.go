// Package ses delivers massmail messages through the Amazon SES v2 API.
//
// There is no persistent connection: Connect builds an authenticated client
// and every recipient is an independent SendEmail call.
//
//	t := ses.New(ses.Config{
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//		Region:    "eu-west-1",
//		From:      "news@example.com",
//	})
//
// Errors returned by SES for the message itself (rejected content,
// unverified sender domain, paused sending) match mailer.ErrRejected; other
// failures match mailer.ErrSendFailed.
package ses
