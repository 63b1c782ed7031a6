// Package email sends transactional messages.
//
// Production traffic goes through Postmark (github.com/mrz1836/postmark). In
// development DevSender writes each message to disk as an .html body plus a
// .json metadata file so links can be opened from the file system. NewSender
// picks between the two from Config and refuses to start without a Postmark
// token outside development, so reset links never end up on disk in production.
//
// Message bodies are usually built from templ components and rendered with
// templates.Render.
package email
