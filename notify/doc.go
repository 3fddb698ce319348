/*
Package notify manages an SNS topic: creation, subscriptions, and message
publication.

Every operation that targets the topic requires a topic ARN, either passed at
construction or established through CreateTopic; calling without one is a
precondition error. Filter policies are forwarded to the provider and
evaluated there.
*/
package notify
