package services

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// chatContext 一类压力场景的回复模板
type chatContext struct {
	name      string
	keywords  []string
	responses []string
	tips      []string
}

// chatContexts 场景表，切片顺序即同分时的选择顺序
var chatContexts = []chatContext{
	{
		name:     "exams",
		keywords: []string{"exam", "test", "study", "finals", "midterm", "quiz", "grade", "gpa"},
		responses: []string{
			"I can see you're dealing with exam stress. That's completely normal - your brain is under pressure to perform. Here are some proven techniques that have helped millions of students.",
			"Exam anxiety is something many people face. The good news is there are specific breathing and focus techniques designed exactly for test situations.",
			"Studying for exams can feel overwhelming. Let me share some resources that combine quick stress relief with focus-enhancing techniques.",
		},
		tips: []string{
			"Try the 4-7-8 breathing technique: inhale for 4 seconds, hold for 7, exhale for 8.",
			"Take a 5-minute break every 25 minutes (Pomodoro technique).",
			"Your brain consolidates information during rest - short breaks actually help!",
		},
	},
	{
		name:     "work",
		keywords: []string{"work", "job", "boss", "office", "deadline", "meeting", "coworker", "project", "presentation"},
		responses: []string{
			"Work pressure can really build up. Whether it's deadlines, difficult colleagues, or presentations - these feelings are valid. Let me find some quick relief techniques you can use even at your desk.",
			"I understand workplace stress is challenging. Here are some discrete relaxation techniques you can do during work hours.",
			"Professional life can be demanding. These resources are specifically designed for busy professionals who need quick stress relief.",
		},
		tips: []string{
			"Take micro-breaks: just 60 seconds of deep breathing can reset your stress response.",
			"Try desk stretches to release physical tension.",
			"Step outside for a 5-minute walk if possible - natural light helps regulate stress hormones.",
		},
	},
	{
		name:     "sleep",
		keywords: []string{"sleep", "insomnia", "cant sleep", "can't sleep", "awake", "tired", "exhausted", "nightmare", "restless"},
		responses: []string{
			"Sleep issues and stress create a difficult cycle - stress keeps you awake, and lack of sleep increases stress. Let me share some calming techniques specifically designed to help you wind down.",
			"I hear you're struggling with sleep. These guided sleep meditations and calming sounds have helped many people find rest.",
			"Not being able to sleep is frustrating. Here are some evidence-based relaxation techniques for better sleep.",
		},
		tips: []string{
			"Try progressive muscle relaxation - tense and release each muscle group.",
			"Avoid screens 30 minutes before bed, or use night mode.",
			"Keep your room cool (around 65-68°F/18-20°C) for optimal sleep.",
		},
	},
	{
		name:     "anxiety",
		keywords: []string{"anxious", "anxiety", "panic", "worried", "worry", "nervous", "fear", "scared", "overthinking"},
		responses: []string{
			"Anxiety can feel overwhelming, but there are proven techniques to help calm your nervous system. I'm here to help you through this.",
			"When anxiety hits, your body's fight-or-flight response activates. These breathing exercises can help bring you back to calm.",
			"I understand that anxious feeling. Let me share some grounding techniques and calming resources that can help right now.",
		},
		tips: []string{
			"Try grounding: name 5 things you see, 4 you hear, 3 you touch, 2 you smell, 1 you taste.",
			"Box breathing: inhale 4 seconds, hold 4, exhale 4, hold 4. Repeat.",
			"Remember: anxiety peaks and then passes. This feeling is temporary.",
		},
	},
	{
		name:     "overwhelmed",
		keywords: []string{"overwhelmed", "too much", "cant cope", "can't cope", "breaking down", "falling apart", "stressed out"},
		responses: []string{
			"When everything feels like too much, it's important to take things one small step at a time. Let me help you find some immediate relief.",
			"Feeling overwhelmed is your mind's signal that it needs a break. These quick techniques can help you reset.",
			"I can hear that you're dealing with a lot right now. Let's start with something simple to help ease that pressure.",
		},
		tips: []string{
			"Focus on just one thing at a time - everything else can wait.",
			"Write down everything on your mind, then pick just ONE thing to address.",
			"It's okay to ask for help. You don't have to handle everything alone.",
		},
	},
	{
		name:     "focus",
		keywords: []string{"focus", "concentrate", "distracted", "attention", "productive", "procrastinate", "motivation", "unmotivated"},
		responses: []string{
			"Difficulty focusing often comes from underlying stress. These focus-enhancing techniques combine stress relief with concentration boosters.",
			"When the mind wanders, it's usually trying to protect itself from overwhelm. Here are some gentle ways to improve focus.",
			"Procrastination and focus issues are often linked to anxiety about the task. Let me share some techniques to break through.",
		},
		tips: []string{
			"Break tasks into 25-minute focused sessions with 5-minute breaks.",
			"Listen to ambient sounds or lo-fi music while working.",
			"Start with the easiest task first to build momentum.",
		},
	},
	{
		name:     "relationships",
		keywords: []string{"relationship", "partner", "boyfriend", "girlfriend", "friend", "family", "argument", "fight", "breakup", "lonely", "alone"},
		responses: []string{
			"Relationship challenges can be emotionally draining. Whether it's conflict, loneliness, or change - your feelings are completely valid.",
			"I understand relationship stress affects us deeply. Here are some resources for emotional processing and self-care.",
			"Navigating relationships - whether romantic, family, or friendships - is one of life's biggest challenges. Let me help you find some comfort.",
		},
		tips: []string{
			"It's okay to feel hurt. Allow yourself to process these emotions.",
			"Journaling can help organize thoughts and feelings.",
			"Consider reaching out to someone you trust to talk about how you feel.",
		},
	},
	{
		name:     "sadness",
		keywords: []string{"sad", "depressed", "depression", "hopeless", "crying", "unhappy", "miserable", "down"},
		responses: []string{
			"I'm sorry you're feeling this way. Sadness is a valid emotion, and you don't have to face it alone. Let me share some gentle resources.",
			"When we're feeling down, even small acts of self-care can help. Here are some soothing resources for you.",
			"I hear that you're going through a difficult time. These calming resources may help bring a moment of peace.",
		},
		tips: []string{
			"Be gentle with yourself - you're doing the best you can.",
			"Sometimes fresh air and gentle movement can lift your mood slightly.",
			"If these feelings persist, please consider talking to a mental health professional. You deserve support.",
		},
	},
	{
		name:     "anger",
		keywords: []string{"angry", "mad", "furious", "frustrated", "irritated", "annoyed", "rage"},
		responses: []string{
			"Anger is a natural emotion - it's your mind telling you something needs attention. Let me share some healthy ways to process and release it.",
			"I can sense you're frustrated. These techniques can help you channel that energy and find calm.",
			"It's okay to feel angry. Here are some constructive ways to work through these intense feelings.",
		},
		tips: []string{
			"Physical activity is one of the best ways to release anger - even a brisk walk helps.",
			"Try counting to 10 slowly while taking deep breaths.",
			"Write down what you're angry about - sometimes seeing it on paper provides perspective.",
		},
	},
}

var defaultResponses = []string{
	"I'm here to help you feel better. Based on what you've shared, I've found some resources that may help.",
	"Thank you for opening up. Here are some personalized recommendations to help ease your stress.",
	"I understand you're going through a tough time. Let me share some helpful resources tailored to your situation.",
}

var greetingResponses = []string{
	"Hello! 🌟 I'm here to help you find calm and peace. How are you feeling today? Select an emotion above or tell me what's on your mind.",
	"Hi there! 💚 Welcome to your stress relief companion. What's been weighing on you lately?",
	"Hey! I'm glad you're here. 🌿 Remember, it's brave to seek support. What would you like to talk about?",
}

var greetingPhrases = []string{"hi", "hello", "hey", "greetings", "good morning", "good afternoon",
	"good evening", "hi there", "hello there", "howdy", "sup", "what's up"}

var closingMessages = []string{
	"Remember, it's okay to not be okay. Take care of yourself. 💚",
	"You're doing great by taking steps to feel better. 🌟",
	"I'm always here if you need to talk more. 🌿",
	"Take your time with these resources. There's no rush. 💙",
	"You've got this. One step at a time. 💪",
}

var emotionAcknowledgments = map[string]string{
	"anxious":     "I can sense you're feeling anxious.",
	"stressed":    "I understand you're under a lot of stress.",
	"sad":         "I'm sorry you're feeling down.",
	"tired":       "I can hear that you're exhausted.",
	"angry":       "I understand you're feeling frustrated.",
	"overwhelmed": "I can tell you're feeling overwhelmed.",
}

// emotionBonus 情绪对场景的加分
var emotionBonus = map[string]map[string]int{
	"anxious":  {"anxiety": 3},
	"stressed": {"work": 2, "overwhelmed": 2},
	"tired":    {"sleep": 3},
	"sad":      {"sadness": 3},
	"angry":    {"anger": 3},
}

const (
	tipPrefix      = "\n\n💡 **Quick tip:** "
	resourcesIntro = "\n\n📚 Here are some resources I found for you:"
)

// Chatbot 基于规则的共情回复
type Chatbot struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewChatbot 创建聊天机器人，src为nil时使用随机种子
func NewChatbot(src rand.Source) *Chatbot {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Chatbot{rnd: rand.New(src)}
}

// Response 生成回复
func (c *Chatbot) Response(message, emotion string, keywords []string) string {
	if IsGreeting(message) {
		return c.pick(greetingResponses)
	}

	lower := strings.ToLower(message)
	best := bestContext(lower, emotion, keywords)

	var b strings.Builder
	if best != nil {
		b.WriteString(c.pick(best.responses))
		b.WriteString(tipPrefix)
		b.WriteString(c.pick(best.tips))
	} else {
		if ack := emotionAcknowledgments[emotion]; ack != "" {
			b.WriteString(ack)
			b.WriteString(" ")
		}
		b.WriteString(c.pick(defaultResponses))
	}
	b.WriteString(resourcesIntro)
	return b.String()
}

// ClosingMessage 随机结束语
func (c *Chatbot) ClosingMessage() string {
	return c.pick(closingMessages)
}

func (c *Chatbot) pick(items []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return items[c.rnd.IntN(len(items))]
}

// IsGreeting 不超过3个词且以问候语开头的消息视为打招呼
func IsGreeting(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	if len(strings.Fields(lower)) > 3 {
		return false
	}
	for _, g := range greetingPhrases {
		if strings.HasPrefix(lower, g) {
			return true
		}
	}
	return false
}

// bestContext 选出得分最高的场景，全部为0时返回nil
func bestContext(message, emotion string, keywords []string) *chatContext {
	lowered := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		lowered[strings.ToLower(k)] = true
	}

	var best *chatContext
	bestScore := 0
	for i := range chatContexts {
		ctx := &chatContexts[i]
		score := 0
		for _, k := range ctx.keywords {
			if strings.Contains(message, k) {
				score += 2
			}
			if lowered[k] {
				score++
			}
		}
		score += emotionBonus[emotion][ctx.name]

		if score > bestScore {
			best, bestScore = ctx, score
		}
	}
	return best
}
