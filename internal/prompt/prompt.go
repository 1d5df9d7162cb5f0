package prompt

import (
	"regexp"
	"strings"
)

// Change is one staged file prepared for the prompt: the staged diff plus a
// numbered attachment of the original file content.
type Change struct {
	Path         string
	Diff         string
	OriginalCode string
}

// Data carries everything the prompt needs about the repository and the
// staged set.
type Data struct {
	RepositoryName     string
	BranchName         string
	RecentUserCommits  []string
	RecentRepoCommits  []string
	Changes            []Change
	CustomInstructions string
	Conventional       bool
}

// Build renders the single prompt string sent through the provider chain.
func Build(d Data) string {
	var b strings.Builder

	b.WriteString(taskText(d.Conventional))
	b.WriteString("\n")

	b.WriteString("<repository-context>\n")
	b.WriteString("# REPOSITORY DETAILS:\n")
	b.WriteString("Repository name: " + d.RepositoryName + "\n")
	b.WriteString("Branch name: " + d.BranchName + "\n\n")
	b.WriteString("</repository-context>\n")

	if len(d.RecentUserCommits) > 0 {
		b.WriteString("<user-commits>\n")
		b.WriteString("# RECENT USER COMMITS (For reference only, do not copy!):\n")
		for _, c := range d.RecentUserCommits {
			b.WriteString("- " + c + "\n")
		}
		b.WriteString("\n</user-commits>\n")
	}

	if len(d.RecentRepoCommits) > 0 {
		b.WriteString("<recent-commits>\n")
		b.WriteString("# RECENT REPOSITORY COMMITS (For reference only, do not copy!):\n")
		for _, c := range d.RecentRepoCommits {
			b.WriteString("- " + c + "\n")
		}
		b.WriteString("\n</recent-commits>\n")
	}

	b.WriteString("<changes>\n")
	for _, ch := range d.Changes {
		if strings.TrimSpace(ch.OriginalCode) != "" {
			b.WriteString("<original-code>\n")
			b.WriteString("# ORIGINAL CODE:\n")
			b.WriteString(ch.OriginalCode)
			b.WriteString("\n</original-code>\n")
		}

		b.WriteString("<code-changes>\n")
		b.WriteString("# CODE CHANGES:\n")
		b.WriteString("```diff\n")
		b.WriteString(strings.TrimRight(ch.Diff, "\n"))
		b.WriteString("\n```\n")
		b.WriteString("</code-changes>\n")
	}
	b.WriteString("\n</changes>\n")

	b.WriteString("<reminder>\n")
	b.WriteString("Now generate a commit message that describes the CODE CHANGES.\n")
	b.WriteString("DO NOT COPY commits from RECENT COMMITS, but use them as reference for the commit style.\n")
	b.WriteString("ONLY return a single markdown code block, NO OTHER PROSE!\n")
	b.WriteString("```text\ncommit message goes here\n```\n")
	b.WriteString("</reminder>\n")

	if strings.TrimSpace(d.CustomInstructions) != "" {
		b.WriteString("<custom-instructions>\n")
		b.WriteString(strings.TrimRight(d.CustomInstructions, "\n"))
		b.WriteString("\n</custom-instructions>\n")
	}

	return b.String()
}

func taskText(conventional bool) string {
	var b strings.Builder
	b.WriteString("You are helping a software developer write the best possible git commit message for their staged changes.\n")
	b.WriteString("You excel at reading the intent behind code changes and writing succinct, clear commit messages that match the repository's conventions.\n\n")
	b.WriteString("# First, think step-by-step:\n")
	b.WriteString("1. Analyze the CODE CHANGES thoroughly to understand what was modified.\n")
	b.WriteString("2. Use the ORIGINAL CODE to understand the context of the CODE CHANGES. Use the line numbers to map the CODE CHANGES to the ORIGINAL CODE.\n")
	b.WriteString("3. Identify the purpose of the changes to answer the *why*, also considering the optionally provided RECENT USER COMMITS.\n")
	b.WriteString("4. Review the RECENT REPOSITORY COMMITS to identify established commit message conventions. Focus on format and style, ignoring commit-specific details like refs, tags, and authors.\n")
	if conventional {
		b.WriteString("5. Write the message in Conventional Commits form, type(optional-scope): subject, using types such as feat, fix, docs, test, build, ci, refactor or chore.\n")
	} else {
		b.WriteString("5. Write the message in the style the repository already uses.\n")
	}
	b.WriteString("6. Remove any meta information like issue references, tags, or author names. The developer will add them.\n")
	b.WriteString("7. Only show the message, wrapped in a single markdown ```text code block. Do not add explanations.\n")
	return b.String()
}

var fencedBlock = regexp.MustCompile("(?ms)^```(?:\\w+)?\\s*([\\s\\S]+?)\\s*```$")

// CleanMessage extracts the commit message from a model answer. The prompt
// asks for a single fenced code block; when none is found the trimmed raw
// text is returned as-is.
func CleanMessage(s string) string {
	s = strings.TrimSpace(s)
	if m := fencedBlock.FindStringSubmatch(s); len(m) == 2 {
		return strings.TrimSpace(m[1])
	}
	return s
}
