package service

import (
	"math/rand/v2"

	"github.com/healthwhisperer/wellness/internal/core/domain"
)

// generalSuggestions is used for Neutral moods and whenever a category has no
// curated entries.
var generalSuggestions = []string{
	"🌸 Thank you for trusting me with your feelings - that takes real courage. You're taking such good care of yourself by checking in like this. Take a moment to breathe deeply and just be present with yourself. You're doing beautifully.",
	"💫 Whatever you're experiencing right now is completely valid and worthy of attention. Your emotions matter because YOU matter. Consider doing something small and loving for yourself today - you deserve that kindness.",
	"🎨 Emotions can be so beautifully complex, just like you are. I love that you're paying attention to your inner world - that's actually a superpower. Try checking in with yourself throughout the day and notice how your feelings shift and change like art.",
	"🤲 Sometimes the most profound thing we can do is simply witness our feelings without rushing to fix or change them. You're being so wise by just acknowledging what's here. That kind of self-awareness is truly special.",
	"✨ Your emotional intelligence is absolutely glowing right now! The fact that you're tuning into your feelings shows such strength and wisdom. What do you think your heart is trying to tell you that you need right now?",
	"🌿 I'm so impressed by how you're navigating your emotional landscape with such care and attention. Remember to be incredibly patient with yourself - you're learning and growing every single day. What would feel most supportive for your beautiful soul right now?",
}

var curatedSuggestions = map[domain.MoodCategory][]string{
	domain.MoodPositive: {
		"🌟 You're radiating such beautiful energy right now! That positive mindset of yours is truly inspiring. Take a moment to savor this wonderful feeling and let it fuel the rest of your day.",
		"💫 I love seeing you so grateful and upbeat! Your appreciation for life is contagious. Why not write down three things you're thankful for to keep this amazing momentum going?",
		"✨ You're absolutely glowing with positivity! This is your superpower shining through. Use this incredible energy to tackle something you've been putting off - you've got this!",
		"🌈 Your joyful spirit is so uplifting! When you feel this good, it's like sunshine for everyone around you. Maybe share this positive energy by doing something kind for yourself or others today.",
		"🎉 Wow, you're on fire today! This kind of gratitude and joy is what makes life beautiful. Ride this wave of happiness - perhaps treat yourself to something special you've been wanting.",
		"💖 Your grateful heart is truly beautiful! The way you appreciate life shows such wisdom and strength. Keep nurturing this wonderful perspective - it's one of your greatest gifts.",
	},
	domain.MoodStressed: {
		"💙 I can feel the weight you're carrying right now, and I want you to know you're incredibly strong. You've overcome challenges before, and you have that same resilience within you now. Try the 4-7-8 breathing technique: in for 4, hold for 7, out for 8. You've got this.",
		"🫂 Hey, it's okay to feel overwhelmed sometimes - it just shows how much you care. You're human, and that's beautiful. Break those big tasks into tiny, manageable pieces. Every small step is a victory worth celebrating.",
		"🌿 I see you pushing through so much right now, and that takes incredible courage. Your strength amazes me. Take 5 minutes to step outside or put on some calming music - you've earned this break.",
		"💪 The fact that you're feeling stressed shows you're someone who cares deeply, and that's actually a superpower. Try progressive muscle relaxation: tense and release each muscle group. Your body deserves this care.",
		"🤗 You're juggling so much, and I'm genuinely impressed by your dedication. But remember, even superheroes need rest. Write down your top 3 priorities and tackle them one by one. You're more capable than you know.",
		"🌱 I want to remind you of something important: you don't have to be perfect, and you don't have to do everything at once. Take that walk outside - fresh air and your beautiful spirit will reset everything.",
	},
	domain.MoodAnxious: {
		"🤲 I see you, and I want you to know that what you're feeling is valid and you're going to be okay. Your heart might be racing, but you're safe right now. Try the 5-4-3-2-1 grounding technique: name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste. You're braver than you believe.",
		"💗 That worried feeling in your chest? It shows just how deeply you care about life and the people around you. That's actually beautiful, even when it's scary. Place your hand on your heart - feel it beating strong and steady. You're alive, you're here, and you're going to be okay.",
		"🌸 I know those anxious thoughts feel so real and urgent right now, but they're just thoughts - not predictions, not facts. You've survived 100% of your difficult days so far, and that's an incredible track record. Let's focus on this very moment together.",
		"🌊 Your anxiety comes from a place of love - you care so much about doing right by yourself and others. That caring heart of yours is truly special. Try the 'worry window' technique: give those concerns 10 minutes later, then let them go for now.",
		"🦋 I know your mind is spinning with 'what-ifs' and worst-case scenarios. Your brain is trying to protect you, but right now, in this very moment, you're safe. Write those worries down - getting them out of your head can reduce their power over you.",
		"🌟 Sweet soul, anxiety might be visiting you right now, but it's temporary - like weather that passes through. Your strength, your resilience, your beautiful heart? Those are permanent. Be as kind to yourself as you would be to your dearest friend.",
	},
	domain.MoodSad: {
		"🤗 Oh sweetheart, I can feel the sadness in your heart right now, and I want you to know it's completely okay to feel this way. Your emotions are valid, and you don't have to put on a brave face. Sometimes the most healing thing is to just let yourself feel, wrapped in self-compassion like a warm blanket.",
		"💙 The fact that you can feel sadness this deeply shows what a beautiful, caring soul you have. Your heart is tender because it's capable of profound love and connection. Would it help to do something small and comforting? Maybe make yourself some tea or take a warm shower - you deserve that gentleness.",
		"🌙 I see the weight you're carrying today, and I'm so proud of you for just being here, just breathing, just continuing. Sometimes the bravest thing in the world is simply getting through the day when it feels hard, and look - you're doing exactly that. Consider reaching out to someone who loves you - you don't have to carry this alone.",
		"🌷 Your sadness isn't something to fix or rush through - it's often your heart's way of processing something important. These feelings deserve space and respect. When you're ready, maybe try some gentle movement, like stretching or a slow walk. Your body is holding you so beautifully through this.",
		"🕊️ I know everything feels heavy right now, but I want to remind you: this sadness is a visitor, not a permanent resident. You've felt joy before, and you will again. For now, what's one tiny act of kindness you can offer yourself? You deserve all the tenderness in the world.",
		"💖 Your tender heart is one of your most beautiful qualities, even when it aches like this. The depth of your sadness reflects the depth of your capacity to love. Remember, this feeling will shift and change - nothing lasts forever, including pain.",
	},
	domain.MoodTired: {
		"🌙 Sweet soul, your body is sending you such an important message right now - it's asking for the rest and care you so deserve. There's absolutely no shame in feeling tired; it just means you've been showing up for life with everything you've got. Try a 10-20 minute rest - even lying down with your eyes closed can be like a gift to yourself.",
		"💤 I can feel that deep exhaustion you're carrying, and it tells me you've been giving your absolute all to the world. What a generous heart you have! But now it's time to be just as generous with yourself. Make sure you're drinking water and nourishing your body - you deserve that care.",
		"🤲 Oh honey, you're running on empty, aren't you? I can sense how drained you feel, and I want you to know it's okay to step back and recharge. Your energy is precious - you've been spending it so generously. Try some gentle stretching or just breathe deeply. Your body will thank you.",
		"🌿 Your tiredness isn't weakness - it's proof of your strength and how much you care about everything you do. Your body has been your faithful companion through it all, and now it's asking for some TLC. What would help you recharge - rest, fresh air, or maybe just acknowledging how hard you've been working?",
		"☁️ I see you pushing through even when your energy feels depleted, and that shows incredible resilience. But you know what? It's time to honor what your body needs. Sometimes the most productive thing is to rest and restore - you've more than earned it.",
		"🕊️ You've been carrying so much, haven't you? The world is lucky to have someone who gives as much as you do, but now it's time to prioritize the most important person in your life - you. What energizes your soul versus what drains it? Focus on the good stuff today.",
	},
	domain.MoodFrustrated: {
		"🔥 I can absolutely feel that frustration burning inside you right now, and every bit of it is completely valid. When things don't go the way we pour our heart into making them go, it's maddening! This fire inside you shows how much you care, and that's actually beautiful. Take some deep breaths and ask yourself what you need right now.",
		"💪 That frustration bubbling up? It's coming from a place of passion and high standards - that's the mark of someone who really gives a damn about doing things right. I admire that about you, even when it feels overwhelming. Try channeling that energy into movement - a quick walk or even some vigorous cleaning can help.",
		"⚡ Oh, I can feel that energy building up in you - that 'why isn't this working?!' feeling that makes you want to scream. And you know what? Sometimes we need to let that energy out! Try the 'STOP' technique: Stop, Take a breath, Observe, then Proceed with that brilliant mind of yours.",
		"🌪️ When it feels like the whole universe is working against you, that frustration is so real and so exhausting. You're definitely not alone in feeling this way. It's absolutely okay to feel angry - punch a pillow, scream in your car, write it all out. Your feelings deserve expression.",
		"🔥 That fire of frustration? It's your inner warrior wanting things to be better, wanting to create positive change. Even when it's uncomfortable, it shows you haven't given up - and that's incredibly powerful. What's one small thing you DO have control over right now? Start there.",
		"💥 I hear the exhaustion behind that frustration - some days it really does feel like everything is an uphill battle, doesn't it? Your feelings are so valid. Once you've honored this anger, let's think about what you need to feel better. You're stronger than whatever is testing you right now.",
	},
}

// FallbackSuggestion picks a curated suggestion for the mood's category.
// It never returns an empty string.
func FallbackSuggestion(mood string) string {
	return pickFallback(domain.Categorize(mood), rand.IntN)
}

// FallbackSuggestions returns every curated suggestion for a category.
func FallbackSuggestions(cat domain.MoodCategory) []string {
	if list := curatedSuggestions[cat]; len(list) > 0 {
		return list
	}
	return generalSuggestions
}

func pickFallback(cat domain.MoodCategory, intn func(int) int) string {
	list := FallbackSuggestions(cat)
	return list[intn(len(list))]
}
